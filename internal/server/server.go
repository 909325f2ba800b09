package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/khangha1908/TodoX/internal/config"
	"github.com/khangha1908/TodoX/internal/service"
)

// Server wires the HTTP surface over the services.
type Server struct {
	auth       *service.AuthService
	categories *service.CategoryService
	tasks      *service.TaskService
	templates  *service.TemplateService
	reminders  *service.ReminderService

	echo *echo.Echo
}

// New builds the Echo router with all routes registered.
func New(cfg config.Config, auth *service.AuthService, categories *service.CategoryService,
	tasks *service.TaskService, templates *service.TemplateService, reminders *service.ReminderService) *Server {

	s := &Server{
		auth:       auth,
		categories: categories,
		tasks:      tasks,
		templates:  templates,
		reminders:  reminders,
		echo:       echo.New(),
	}

	e := s.echo
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if cfg.CORSOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{cfg.CORSOrigin},
		}))
	}

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.GET("/profile", s.profile, s.requireAuth)

	categoryGroup := api.Group("/categories", s.requireAuth)
	categoryGroup.GET("", s.listCategories)
	categoryGroup.POST("", s.createCategory)
	categoryGroup.PUT("/:id", s.updateCategory)
	categoryGroup.DELETE("/:id", s.deleteCategory)

	taskGroup := api.Group("/tasks", s.requireAuth)
	taskGroup.GET("", s.listTasks)
	taskGroup.POST("", s.createTask)
	taskGroup.PUT("/:id", s.updateTask)
	taskGroup.DELETE("/:id", s.deleteTask)
	taskGroup.POST("/bulk-delete", s.bulkDeleteTasks)
	taskGroup.POST("/bulk-update", s.bulkUpdateTasks)
	taskGroup.GET("/due-soon", s.dueSoonTasks)

	templateGroup := api.Group("/templates", s.requireAuth)
	templateGroup.GET("", s.listTemplates)
	templateGroup.POST("", s.createTemplate)
	templateGroup.PUT("/:id", s.updateTemplate)
	templateGroup.DELETE("/:id", s.deleteTemplate)

	// Serve the built SPA when a dist dir is configured. HTML5 mode sends
	// unknown paths to index.html so client-side routing keeps working.
	if cfg.StaticDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.StaticDir,
			HTML5: true,
		}))
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the given address until the server is shut down.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// writeError maps service errors to HTTP responses. Anything unrecognized is
// logged and reported as a generic 500 so store errors never leak.
func writeError(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateUser),
		errors.Is(err, service.ErrDuplicateCategory),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrBadCategory),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrEmptyIDList),
		errors.Is(err, service.ErrBadStatus),
		errors.Is(err, service.ErrBadPriority):
		status = http.StatusBadRequest
	default:
		log.Printf("server error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}
	return c.JSON(status, echo.Map{"message": err.Error()})
}
