package server

import (
	"io/fs"
	"net/http"

	"ctchen222/tic-tac-toe-solo/internal/api/controller"
	"ctchen222/tic-tac-toe-solo/internal/config"
	"ctchen222/tic-tac-toe-solo/internal/session"
	"ctchen222/tic-tac-toe-solo/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("server")

type Server struct {
	cfg      *config.Config
	sessions *session.Service
	games    *controller.GameController
	static   fs.FS
	upgrader websocket.Upgrader
}

func NewServer(cfg *config.Config, sessions *session.Service, games *controller.GameController, static fs.FS) (*Server, error) {
	if err := validator.RegisterGinValidations(); err != nil {
		return nil, err
	}
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		games:    games,
		static:   static,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(s.static))
	})
	r.StaticFS("/static", http.FS(s.static))
	r.GET("/healthz", s.games.Health)
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	api.GET("/config", s.games.Config)
	api.POST("/games", s.games.StartGame)
	api.GET("/games/current", s.games.CurrentGame)
	api.POST("/games/current/moves", s.games.Move)
	api.DELETE("/games/current", s.games.EndGame)
	api.POST("/analyze", s.games.Analyze)
	api.POST("/winner", s.games.Winner)

	return r
}

// Engine returns the instrumented HTTP handler.
func (s *Server) Engine() http.Handler {
	return otelhttp.NewHandler(s.Router(), s.cfg.Telemetry.ServiceName)
}
