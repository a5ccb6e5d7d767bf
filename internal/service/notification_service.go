package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/config"
	"github.com/Amrtamer711/ironforge-sub001/pkg/jobs"
)

// NotificationService delivers stakeholder alerts to per-role Slack
// incoming webhooks. Delivery is asynchronous and best-effort: a failed
// delivery is retried by the queue and finally logged, never propagated
// back to the scheduler.
type NotificationService struct {
	queue    *jobs.Queue
	webhooks map[models.StakeholderRole]string
	client   *http.Client
	logger   *zap.Logger
	enabled  bool
}

type notificationJob struct {
	Role    models.StakeholderRole
	Message string
}

// NewNotificationService constructs the sink from configuration.
func NewNotificationService(cfg config.NotificationsConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	svc := &NotificationService{
		webhooks: map[models.StakeholderRole]string{
			models.RoleReviewer:    cfg.ReviewerWebhookURL,
			models.RoleHeadOfSales: cfg.HeadOfSalesWebhook,
		},
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		enabled: cfg.Enabled,
	}
	svc.queue = jobs.NewQueue("notifications", svc.deliver, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		RetryDelay: cfg.WorkerRetryInterval,
		Logger:     logger,
	})
	return svc
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Notify queues one message for a stakeholder role. Fire-and-forget: every
// failure path is logged and swallowed here.
func (s *NotificationService) Notify(ctx context.Context, role models.StakeholderRole, message string) {
	if !s.enabled {
		s.logger.Debug("notifications disabled, dropping alert",
			zap.String("role", string(role)))
		return
	}
	if s.webhooks[role] == "" {
		s.logger.Warn("no webhook configured for stakeholder role",
			zap.String("role", string(role)))
		return
	}

	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "stakeholder_alert",
		Payload: notificationJob{Role: role, Message: message},
	})
	if err != nil {
		s.logger.Error("failed to enqueue notification",
			zap.String("role", string(role)), zap.Error(err))
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(notificationJob)
	if !ok {
		s.logger.Error("notification job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}

	body, err := json.Marshal(map[string]string{"text": payload.Message})
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhooks[payload.Role], bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification to %s: %w", payload.Role, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook for %s responded %d", payload.Role, resp.StatusCode)
	}
	return nil
}
