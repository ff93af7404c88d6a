package utils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrResultNotFound is returned when no stored result exists for a job
var ErrResultNotFound = errors.New("result not found")

// ResultRow is one row of the bleu_results table
type ResultRow struct {
	Job               string
	BLEU              float64
	Precisions        [4]float64
	BrevityPenalty    float64
	ReferenceLength   int
	TranslationLength int
	Records           int
	Groups            int
	SkippedLines      int
	Grouping          string
	Policy            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const resultColumns = `job, bleu, precision_1, precision_2, precision_3, precision_4,
	brevity_penalty, reference_length, translation_length, records, group_count,
	skipped_lines, grouping_strategy, reference_policy, created_at, updated_at`

// UpsertResult inserts a result or replaces the stored one for the same job
func UpsertResult(ctx context.Context, row ResultRow) error {
	if DB == nil {
		return errors.New("database connection is nil; call InitDB first")
	}
	_, err := DB.ExecContext(ctx, `
		INSERT INTO bleu_results (`+resultColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (job) DO UPDATE SET
			bleu = EXCLUDED.bleu,
			precision_1 = EXCLUDED.precision_1,
			precision_2 = EXCLUDED.precision_2,
			precision_3 = EXCLUDED.precision_3,
			precision_4 = EXCLUDED.precision_4,
			brevity_penalty = EXCLUDED.brevity_penalty,
			reference_length = EXCLUDED.reference_length,
			translation_length = EXCLUDED.translation_length,
			records = EXCLUDED.records,
			group_count = EXCLUDED.group_count,
			skipped_lines = EXCLUDED.skipped_lines,
			grouping_strategy = EXCLUDED.grouping_strategy,
			reference_policy = EXCLUDED.reference_policy,
			updated_at = EXCLUDED.updated_at
	`,
		row.Job, row.BLEU,
		row.Precisions[0], row.Precisions[1], row.Precisions[2], row.Precisions[3],
		row.BrevityPenalty, row.ReferenceLength, row.TranslationLength,
		row.Records, row.Groups, row.SkippedLines, row.Grouping, row.Policy,
		row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert result for %s: %w", row.Job, err)
	}
	return nil
}

// GetResult loads the stored result of a job
func GetResult(ctx context.Context, job string) (*ResultRow, error) {
	if DB == nil {
		return nil, errors.New("database connection is nil; call InitDB first")
	}
	row := DB.QueryRowContext(ctx, `SELECT `+resultColumns+` FROM bleu_results WHERE job = $1`, job)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result for %s: %w", job, err)
	}
	return r, nil
}

// ListResults returns every stored result, newest first
func ListResults(ctx context.Context) ([]ResultRow, error) {
	if DB == nil {
		return nil, errors.New("database connection is nil; call InitDB first")
	}
	rows, err := DB.QueryContext(ctx, `SELECT `+resultColumns+` FROM bleu_results ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []ResultRow
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (*ResultRow, error) {
	var r ResultRow
	err := s.Scan(&r.Job, &r.BLEU,
		&r.Precisions[0], &r.Precisions[1], &r.Precisions[2], &r.Precisions[3],
		&r.BrevityPenalty, &r.ReferenceLength, &r.TranslationLength,
		&r.Records, &r.Groups, &r.SkippedLines, &r.Grouping, &r.Policy,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
