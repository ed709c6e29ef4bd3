// Package web provides the boardhub web server: routing, middleware, the
// websocket hub, and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"

	"boardhub/config"
	"boardhub/logger"
	"boardhub/util/common"
	"boardhub/web/controller"
	"boardhub/web/job"
	"boardhub/web/middleware"
	"boardhub/web/service"
	"boardhub/web/session"
	"boardhub/web/websocket"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server wires the services, controllers, hub and cron together.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	hub *websocket.Hub

	authService    *service.AuthService
	projectService *service.ProjectService
	boardService   *service.BoardService
	listService    *service.ListService
	cardService    *service.CardService
	adminService   *service.UserAdminService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initServices builds the service layer around a shared hub.
func (s *Server) initServices() {
	s.hub = websocket.NewHub()
	s.authService = &service.AuthService{}
	s.projectService = &service.ProjectService{Hub: s.hub}
	s.boardService = &service.BoardService{Hub: s.hub}
	s.listService = &service.ListService{Hub: s.hub}
	s.cardService = &service.CardService{Hub: s.hub}
	s.adminService = &service.UserAdminService{Hub: s.hub}
}

// initRouter initializes gin, registers middleware and controllers, and
// returns the configured engine.
func (s *Server) initRouter() *gin.Engine {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(config.GetSessionSecret()))
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(middleware.SessionAuth(s.authService))

	root := engine.Group("")
	controller.NewPingController(root)
	controller.NewWebSocketController(root, s.hub)

	controller.NewAuthController(engine.Group("/auth"), s.authService)
	controller.NewProjectController(engine.Group("/projects"), s.projectService)
	controller.NewBoardController(engine.Group("/boards"), s.boardService)
	controller.NewListController(engine.Group("/lists"), s.listService)
	controller.NewCardController(engine.Group("/cards"), s.cardService)
	controller.NewAdminController(engine.Group("/admin"), s.adminService)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return engine
}

// startTask schedules background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@hourly", job.NewSessionCleanupJob(s.authService))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	s.initServices()
	go s.hub.Run()

	engine := s.initRouter()

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the server, hub and cron.
func (s *Server) Stop() error {
	s.cancel()
	s.hub.Stop()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
