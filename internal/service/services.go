package service

import (
	"RGFlow/internal/auth"
	"RGFlow/internal/store"

	"go.uber.org/zap"
)

// Services — набор сервисов поверх одного Store.
type Services struct {
	Session       *SessionService
	Tickets       *TicketService
	Tasks         *TaskService
	Documents     *DocumentService
	Notifications *NotificationService
	Dashboard     *DashboardService
}

// New собирает все сервисы. maxAttachment — лимит одного файла в байтах.
func New(st *store.Store, a auth.Authenticator, logger *zap.SugaredLogger, maxAttachment int64) Services {
	return Services{
		Session:       NewSessionService(st, a, logger),
		Tickets:       NewTicketService(st, logger, maxAttachment),
		Tasks:         NewTaskService(st, logger),
		Documents:     NewDocumentService(st, logger, maxAttachment),
		Notifications: NewNotificationService(st, logger),
		Dashboard:     NewDashboardService(st),
	}
}
