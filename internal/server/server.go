package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"edumate/internal/service"
)

// Options carries the collaborators and settings of the web server.
type Options struct {
	Accounts     *service.AccountService
	Tasks        *service.TaskService
	Reminders    *service.ReminderService
	Logger       *slog.Logger
	StaticDir    string
	CookieSecure bool
}

// Server provides the HTML handlers of the task and reminder tracker.
type Server struct {
	engine       *gin.Engine
	accounts     *service.AccountService
	tasks        *service.TaskService
	reminders    *service.ReminderService
	logger       *slog.Logger
	staticDir    string
	cookieSecure bool
	sessionTTL   time.Duration
}

// New constructs the HTTP server with routes and middleware configured.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/static"))

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	srv := &Server{
		engine:       router,
		accounts:     opts.Accounts,
		tasks:        opts.Tasks,
		reminders:    opts.Reminders,
		logger:       logger,
		staticDir:    opts.StaticDir,
		cookieSecure: opts.CookieSecure,
		sessionTTL:   opts.Accounts.SessionTTL(),
	}

	srv.registerRoutes()
	return srv, nil
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all page and static handlers together.
func (s *Server) registerRoutes() {
	s.engine.Use(s.loadIdentity())
	s.engine.GET("/healthz", s.handleHealth)

	guest := s.engine.Group("/", s.guestOnly())
	{
		guest.GET("/signup", s.handleSignupForm)
		guest.POST("/signup", s.handleSignup)
		guest.GET("/login", s.handleLoginForm)
		guest.POST("/login", s.handleLogin)
	}

	s.engine.GET("/forgot-password", s.handleForgotPasswordForm)
	s.engine.POST("/forgot-password", s.handleForgotPassword)
	s.engine.GET("/reset-password", s.handleResetPasswordForm)
	s.engine.POST("/reset-password", s.handleResetPassword)

	app := s.engine.Group("/", s.requireLogin())
	{
		app.GET("/", s.handleIndex)
		app.GET("/logout", s.handleLogout)

		app.GET("/tasks", s.handleTaskManagement)
		app.GET("/add", s.handleAddTaskForm)
		app.POST("/add", s.handleAddTask)
		app.GET("/edit/:id", s.handleEditTaskForm)
		app.POST("/edit/:id", s.handleEditTask)
		app.GET("/task/:id", s.handleViewTask)
		app.POST("/task/:id/delete", s.handleDeleteTask)

		app.GET("/reminder", s.handleListReminders)
		app.GET("/reminder/add", s.handleAddReminderForm)
		app.POST("/reminder/add", s.handleAddReminder)
		app.GET("/reminder/:id", s.handleViewReminder)
		app.GET("/reminder/:id/edit", s.handleEditReminderForm)
		app.POST("/reminder/:id/edit", s.handleEditReminder)
		app.POST("/reminder/:id/delete", s.handleDeleteReminder)

		app.GET("/profile", s.handleProfile)
		app.GET("/profile/edit", s.handleEditProfileForm)
		app.POST("/profile/edit", s.handleEditProfile)
		app.GET("/faqs", s.handleStaticPage("faqs.html", "FAQs"))
		app.GET("/chat", s.handleStaticPage("chat.html", "Chat"))
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64; anything else is a missing page.
func (s *Server) parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.renderStatus(c, http.StatusNotFound, "Page not found.")
		return 0, false
	}
	return id, true
}

// respondError logs the error and renders the generic failure page.
func (s *Server) respondError(c *gin.Context, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	s.renderStatus(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
