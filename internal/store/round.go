package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathwheel/internal/wheel"
)

type roundRepo struct {
	db *sql.DB
}

func (r *roundRepo) AppendRound(ctx context.Context, rd *Round) error {
	if rd.ID == "" {
		rd.ID = uuid.NewString()
	}
	if rd.CreatedAt.IsZero() {
		rd.CreatedAt = time.Now().UTC()
	}

	op, err := rd.Operation.MarshalText()
	if err != nil {
		return fmt.Errorf("encode operation: %w", err)
	}
	options, err := json.Marshal(rd.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO rounds
		(id, session_id, operation, operand_a, operand_b, answer, options, chosen, correct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rd.ID, rd.SessionID, string(op), rd.OperandA, rd.OperandB, rd.Answer,
		string(options), rd.Chosen, rd.Correct, rd.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

func (r *roundRepo) RecentRounds(ctx context.Context, limit int) ([]Round, error) {
	query := `SELECT id, session_id, operation, operand_a, operand_b, answer, options, chosen, correct, created_at
		FROM rounds ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var (
			rd      Round
			op      string
			options string
			created int64
		)
		if err := rows.Scan(&rd.ID, &rd.SessionID, &op, &rd.OperandA, &rd.OperandB,
			&rd.Answer, &options, &rd.Chosen, &rd.Correct, &created); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		if err := rd.Operation.UnmarshalText([]byte(op)); err != nil {
			return nil, fmt.Errorf("round %s: %w", rd.ID, err)
		}
		if err := json.Unmarshal([]byte(options), &rd.Options); err != nil {
			return nil, fmt.Errorf("round %s options: %w", rd.ID, err)
		}
		rd.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, rd)
	}
	return out, rows.Err()
}

func (r *roundRepo) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	byOp := make(map[wheel.Operation]*OperationStats, len(wheel.Operations))
	for _, op := range wheel.Operations {
		st.ByOperation = append(st.ByOperation, OperationStats{Operation: op})
	}
	for i := range st.ByOperation {
		byOp[st.ByOperation[i].Operation] = &st.ByOperation[i]
	}

	rows, err := r.db.QueryContext(ctx, `SELECT operation, COUNT(*),
		COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0)
		FROM rounds GROUP BY operation`)
	if err != nil {
		return nil, fmt.Errorf("aggregate rounds: %w", err)
	}
	for rows.Next() {
		var (
			name              string
			attempts, correct int
		)
		if err := rows.Scan(&name, &attempts, &correct); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		op, err := wheel.ParseOperation(name)
		if err != nil {
			continue
		}
		byOp[op].Attempts = attempts
		byOp[op].Correct = correct
		st.Attempts += attempts
		st.Correct += correct
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var last sql.NullInt64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT session_id), MAX(created_at) FROM rounds`,
	).Scan(&st.Sessions, &last); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if last.Valid {
		st.LastPlayed = time.UnixMilli(last.Int64).UTC()
	}

	if err := r.streaks(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// streaks walks results in insertion order to find the best and current runs.
func (r *roundRepo) streaks(ctx context.Context, st *Stats) error {
	rows, err := r.db.QueryContext(ctx, `SELECT correct FROM rounds ORDER BY seq`)
	if err != nil {
		return fmt.Errorf("query streaks: %w", err)
	}
	defer rows.Close()

	run := 0
	for rows.Next() {
		var ok bool
		if err := rows.Scan(&ok); err != nil {
			return fmt.Errorf("scan streak: %w", err)
		}
		if !ok {
			run = 0
			continue
		}
		run++
		st.BestStreak = max(st.BestStreak, run)
	}
	st.CurrentStreak = run
	return rows.Err()
}

func (r *roundRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rounds`); err != nil {
		return fmt.Errorf("delete rounds: %w", err)
	}
	return nil
}
