package postgres

import (
	"context"
	"fmt"

	"driving-quiz-service/internal/app"
	"driving-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// HistoryStore persists completed sessions in session_results and session_answers.
type HistoryStore struct {
	pool *pgxpool.Pool
}

func NewHistoryStore(pool *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{pool: pool}
}

func (s *HistoryStore) Record(ctx context.Context, rec domain.SessionRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO session_results (id, player_id, category, total, correct, score, tier, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.PlayerID, string(rec.Category), rec.Total, rec.Correct, rec.Score, string(rec.Tier), rec.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert session result: %w", err)
	}

	batch := &pgx.Batch{}
	for i, a := range rec.Answers {
		batch.Queue(
			`INSERT INTO session_answers (session_id, position, question_id, category, selected_option_id, correct)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, i, a.QuestionID, string(a.Category), a.SelectedOptionID, a.Correct)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for range rec.Answers {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("insert session answer: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("insert session answers: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (s *HistoryStore) Stats(ctx context.Context, playerID string) (domain.PlayerStats, error) {
	var sessions, scoreSum int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*), coalesce(sum(score), 0) FROM session_results WHERE player_id = $1`,
		playerID).Scan(&sessions, &scoreSum)
	if err != nil {
		return domain.PlayerStats{}, fmt.Errorf("load session totals: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT a.category, count(*), count(*) FILTER (WHERE a.correct)
		   FROM session_answers a
		   JOIN session_results r ON r.id = a.session_id
		  WHERE r.player_id = $1
		  GROUP BY a.category`, playerID)
	if err != nil {
		return domain.PlayerStats{}, fmt.Errorf("load category totals: %w", err)
	}
	defer rows.Close()

	tallies := make(map[domain.Category]app.Tally)
	for rows.Next() {
		var category string
		var t app.Tally
		if err := rows.Scan(&category, &t.Answered, &t.Correct); err != nil {
			return domain.PlayerStats{}, fmt.Errorf("scan category totals: %w", err)
		}
		tallies[domain.Category(category)] = t
	}
	if err := rows.Err(); err != nil {
		return domain.PlayerStats{}, err
	}
	return app.BuildStats(playerID, sessions, scoreSum, tallies), nil
}

// Recent returns up to limit records with their answers, newest first. A non-positive limit
// returns every record.
func (s *HistoryStore) Recent(ctx context.Context, playerID string, limit int) ([]domain.SessionRecord, error) {
	var limitArg interface{}
	if limit > 0 {
		limitArg = limit
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, player_id, category, total, correct, score, tier, completed_at
		   FROM session_results
		  WHERE player_id = $1
		  ORDER BY completed_at DESC
		  LIMIT $2`, playerID, limitArg)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var records []domain.SessionRecord
	index := make(map[string]int)
	for rows.Next() {
		var rec domain.SessionRecord
		var category, tier string
		if err := rows.Scan(&rec.ID, &rec.PlayerID, &category, &rec.Total, &rec.Correct, &rec.Score, &tier, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Category = domain.Category(category)
		rec.Tier = domain.Tier(tier)
		rec.CompletedAt = rec.CompletedAt.UTC()
		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	answerRows, err := s.pool.Query(ctx,
		`SELECT session_id, question_id, category, selected_option_id, correct
		   FROM session_answers
		  WHERE session_id = ANY($1)
		  ORDER BY session_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("load history answers: %w", err)
	}
	defer answerRows.Close()

	for answerRows.Next() {
		var sessionID, category string
		var a domain.AnswerRecord
		if err := answerRows.Scan(&sessionID, &a.QuestionID, &category, &a.SelectedOptionID, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan history answer: %w", err)
		}
		a.Category = domain.Category(category)
		i := index[sessionID]
		records[i].Answers = append(records[i].Answers, a)
	}
	return records, answerRows.Err()
}
