package commands

import (
	"context"
	"log/slog"
	"time"

	"visa-booking/internal/domain/user"
	"visa-booking/internal/domain/webhook"
	"visa-booking/internal/pkg/clock"
	"visa-booking/internal/pkg/errs"
	"visa-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type WebhookSettings struct {
	URL         string
	Secret      string
	MaxAttempts int
	RetryBase   time.Duration
	// Lease bounds one delivery attempt; it must exceed the sender timeout.
	Lease time.Duration
}

type WebhookCommands interface {
	// Deliver sends one log. Delivery outcomes are recorded on the log, not returned as errors.
	Deliver(ctx context.Context, logID uuid.UUID) (*webhook.Log, error)
	ResendWebhook(ctx context.Context, actor user.Actor, logID uuid.UUID) (*webhook.Log, error)
	// EnqueueDue hands logs that are due for a (re)try to the queue and returns how many were queued.
	EnqueueDue(ctx context.Context, limit int) (int, error)
}

type webhookUseCaseImpl struct {
	uow      shared.UnitOfWork
	sender   shared.WebhookSender
	queue    shared.WebhookQueue
	settings WebhookSettings
	clock    clock.Clock
}

func NewWebhookUseCase(uow shared.UnitOfWork, sender shared.WebhookSender, queue shared.WebhookQueue, settings WebhookSettings, clk clock.Clock) WebhookCommands {
	return &webhookUseCaseImpl{
		uow:      uow,
		sender:   sender,
		queue:    queue,
		settings: settings,
		clock:    clk,
	}
}

func (uc *webhookUseCaseImpl) Deliver(ctx context.Context, logID uuid.UUID) (*webhook.Log, error) {
	var (
		l        *webhook.Log
		sendable bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		l, err = tx.WebhookLogs().GetForUpdate(ctx, logID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if !l.Claim(now, now.Add(uc.settings.Lease)) {
			return nil
		}

		if cfgErr := uc.checkConfig(); cfgErr != nil {
			l.MarkConfigFailure(cfgErr.Error(), now)
			return tx.WebhookLogs().Update(ctx, l)
		}

		body, err := webhook.BuildEnvelope(l.EventID, l.EventType, l.Payload)
		if err != nil {
			// an undecodable payload will not improve with retries
			l.MarkConfigFailure(err.Error(), now)
			return tx.WebhookLogs().Update(ctx, l)
		}
		l.Prepare(body, webhook.Sign(uc.settings.Secret, body), now)
		sendable = true
		return tx.WebhookLogs().Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	if !sendable {
		if l.ErrorKind != nil && *l.ErrorKind == webhook.ErrorKindConfig {
			slog.Warn("webhook not sent: configuration error", "log_id", l.ID, "event_type", l.EventType, "error", deref(l.Error))
		}
		return l, nil
	}

	res, sendErr := uc.sender.Send(ctx, uc.settings.URL, l.RequestBody, *l.Signature)

	now := uc.clock.Now()
	switch {
	case sendErr != nil:
		l.MarkDeliveryFailure(errs.Wrap(sendErr, errs.ErrWebhookDeliveryFailed.Error()).Error(),
			nil, nil, uc.settings.MaxAttempts, uc.settings.RetryBase, now)
	case !res.IsSuccess():
		status := res.StatusCode
		l.MarkDeliveryFailure(errs.Newm(errs.ErrWebhookDeliveryFailed, "endpoint responded with status %d", status).Error(),
			&status, res.Body, uc.settings.MaxAttempts, uc.settings.RetryBase, now)
	default:
		l.MarkSent(res.StatusCode, res.Body, now)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.WebhookLogs().Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	if l.Status == webhook.StatusSent {
		slog.Info("webhook delivered", "log_id", l.ID, "event_type", l.EventType, "attempts", l.Attempts)
	} else {
		slog.Warn("webhook delivery failed",
			"log_id", l.ID,
			"event_type", l.EventType,
			"attempts", l.Attempts,
			"next_attempt_at", l.NextAttemptAt,
			"error", deref(l.Error))
	}
	return l, nil
}

func (uc *webhookUseCaseImpl) checkConfig() error {
	switch {
	case uc.settings.Secret == "":
		return errs.Newm(errs.ErrWebhookConfigMissing, "webhook signing secret is not configured")
	case uc.settings.URL == "":
		return errs.Newm(errs.ErrWebhookConfigMissing, "webhook URL is not configured")
	}
	return nil
}

func (uc *webhookUseCaseImpl) ResendWebhook(ctx context.Context, actor user.Actor, logID uuid.UUID) (*webhook.Log, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var retry *webhook.Log
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		original, err := tx.WebhookLogs().Get(ctx, logID)
		if err != nil {
			return err
		}
		retry, err = webhook.NewRetry(original, actor.UserID, uc.clock.Now())
		if err != nil {
			return err
		}
		return tx.WebhookLogs().Create(ctx, retry)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("webhook resend requested", "log_id", retry.ID, "retry_of", logID, "retried_by", actor.UserID)
	return uc.Deliver(ctx, retry.ID)
}

func (uc *webhookUseCaseImpl) EnqueueDue(ctx context.Context, limit int) (int, error) {
	var due []webhook.Log
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.WebhookLogs().ListDue(ctx, uc.clock.Now(), limit)
		return err
	})
	if err != nil {
		return 0, err
	}
	ids := make([]uuid.UUID, 0, len(due))
	for _, l := range due {
		ids = append(ids, l.ID)
	}
	if len(ids) > 0 {
		uc.queue.Enqueue(ids...)
	}
	return len(ids), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
