package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cse-sg/absence-service/internal/config"
	"github.com/cse-sg/absence-service/internal/events"
)

// NotificationService handles emitting notifications for domain events, so
// team leaders hear about new reports without watching the dashboard.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAbsenceSubmitted, n.handleAbsenceSubmitted)
	n.dispatcher.Subscribe(events.EventAbsenceAcknowledged, n.handleAbsenceAcknowledged)
	n.dispatcher.Subscribe(events.EventStaffCreated, n.handleStaffCreated)
}

func (n *NotificationService) handleAbsenceSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("AbsenceSubmitted", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAbsenceAcknowledged(ctx context.Context, event events.Event) error {
	n.logger.Info("AbsenceAcknowledged", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStaffCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("StaffCreated", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
