package migrations

import (
	"context"
	"encoding/json"
	"fmt"

	"driving-quiz-service/internal/bank"
	"github.com/uptrace/bun"
)

// Seeds the built-in bank so a fresh database can serve sessions. Existing rows are kept.
func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			for _, q := range bank.Default() {
				raw, err := json.Marshal(q)
				if err != nil {
					return fmt.Errorf("marshal question %s: %w", q.ID, err)
				}
				if _, err := db.ExecContext(ctx,
					`INSERT INTO questions (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
					q.ID, string(raw)); err != nil {
					return err
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			ids := make([]string, 0)
			for _, q := range bank.Default() {
				ids = append(ids, q.ID)
			}
			_, err := db.ExecContext(ctx, `DELETE FROM questions WHERE id IN (?)`, bun.In(ids))
			return err
		},
	)
}
