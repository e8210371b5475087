package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

const (
	eventQueue         = "assignment_events"
	boardGenerationKey = "station_board_gen"
)

// publishAssignmentEvent notifies downstream consumers (dashboards, the
// notify worker) of a committed change. The mutation is already durable at
// this point, so a publish failure is logged and never surfaced to the
// caller.
func (h *Handler) publishAssignmentEvent(msg *domain.AssignmentEventMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to serialize assignment event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.eventChannel.PublishWithContext(
		ctx,
		"",
		eventQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("failed to publish assignment event", "error", err)
	}
}

// invalidateBoardCache bumps the board generation counter, which is part of
// every cached board key. Best effort: on failure stale boards simply age
// out with their TTL.
func (h *Handler) invalidateBoardCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Incr(ctx, boardGenerationKey).Err(); err != nil {
		slog.Error("failed to invalidate board cache", "error", err)
	}
}
