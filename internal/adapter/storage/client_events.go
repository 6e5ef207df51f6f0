package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/port"
)

var _ port.ClientEventsSink = (*ClientEventsRepository)(nil)

const insertClientEventQuery = `
	INSERT INTO client_events (
		session_id, version, intent, product_id, position,
		category, max_price, view, cart_count, cart_total, occurred_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (session_id, version) DO NOTHING;
`

// A ClientEventsRepository journals client events to postgres.
//
// Rows are unique per (session_id, version), so a retried batch does not
// duplicate events.
type ClientEventsRepository struct {
	sqldb sqldb
}

func NewClientEventsRepository(sqldb sqldb) ClientEventsRepository {
	return ClientEventsRepository{sqldb}
}

func (r ClientEventsRepository) SendEvents(
	ctx context.Context, vs []domain.ClientEvent,
) (storeErr error) {
	const op = "ClientEventsRepository.SendEvents"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertClientEventQuery)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, v := range vs {
		_, err := stmt.ExecContext(ctx,
			v.SessionID, int64(v.Version), string(v.Intent),
			nullProductID(v.ProductID), nullPosition(v.Position),
			string(v.Category), v.MaxPrice, string(v.View),
			v.CartCount, v.CartTotal, v.OccurredAt,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

func nullProductID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func nullPosition(p int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(p), Valid: p >= 0}
}
