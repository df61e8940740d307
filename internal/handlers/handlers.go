package handlers

import (
	"RGFlow/internal/config"
	"RGFlow/internal/middleware"
	"RGFlow/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(svc service.Services, logger *zap.SugaredLogger, config *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(svc.Session, logger, config)
	ticketHandler := NewTicketHandler(svc.Tickets, logger, config)
	taskHandler := NewTaskHandler(svc.Tasks, logger)
	documentHandler := NewDocumentHandler(svc.Documents, logger, config)
	notificationHandler := NewNotificationHandler(svc.Notifications, logger)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, logger)

	// User routes
	r.Post("/api/user/login", userHandler.Login)
	r.Get("/api/user/status", userHandler.Status)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/api/user/logout", userHandler.Logout)

		r.Get("/api/tickets", ticketHandler.List)
		r.Post("/api/tickets", ticketHandler.Create)
		r.Get("/api/tickets/export.csv", ticketHandler.ExportCSV)
		r.Get("/api/tickets/{id}", ticketHandler.Get)
		r.Delete("/api/tickets/{id}", ticketHandler.Delete)
		r.Get("/api/tickets/{id}/attachments/{n}", ticketHandler.Attachment)

		r.Get("/api/tasks", taskHandler.List)
		r.Post("/api/tasks", taskHandler.Create)
		r.Post("/api/tasks/{id}/toggle", taskHandler.Toggle)
		r.Patch("/api/tasks/{id}", taskHandler.Update)
		r.Delete("/api/tasks/{id}", taskHandler.Delete)

		r.Get("/api/documents", documentHandler.List)
		r.Post("/api/documents", documentHandler.Upload)
		r.Get("/api/documents/{id}/download", documentHandler.Download)
		r.Delete("/api/documents/{id}", documentHandler.Delete)

		r.Get("/api/notifications", notificationHandler.List)
		r.Post("/api/notifications/{id}/read", notificationHandler.MarkRead)

		r.Get("/api/dashboard/metrics", dashboardHandler.Metrics)
	})

	// HTML-страницы проходят через ворота роутера страниц
	r.Get("/dashboard", dashboardHandler.Dashboard)
	r.Get("/reports", dashboardHandler.Reports)

	return &Handler{Router: r}
}
