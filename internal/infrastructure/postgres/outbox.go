package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	appCtx "github.com/minyoungbaek/eventory/internal/pkg/context"
)

// enqueueOutbox writes a domain event row inside the caller's
// transaction. The outbox worker publishes it after commit; a rolled
// back transaction takes its outbox rows with it.
func enqueueOutbox(ctx context.Context, tx pgx.Tx, routingKey string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox (message_id, trace_id, routing_key, payload, occurred_at, status)
		VALUES ($1, $2, $3, $4, NOW(), 'pending')
	`, uuid.New(), appCtx.RequestID(ctx), routingKey, body)
	return err
}
