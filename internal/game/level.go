package game

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the difficulty chosen at the start of a game.
type Level uint8

const (
	Easy Level = iota + 1
	Medium
	Hard
)

// Levels lists every difficulty in ascending order.
var Levels = []Level{Easy, Medium, Hard}

var ErrUnknownLevel = errors.New("unknown difficulty level")

func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// Valid reports whether l is one of Levels.
func (l Level) Valid() bool {
	return l >= Easy && l <= Hard
}

// ParseLevel maps a level name, case-insensitively, to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
