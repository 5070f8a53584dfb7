package session

// LockCount reports how many session locks are held or awaited.
func (s *Service) LockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
