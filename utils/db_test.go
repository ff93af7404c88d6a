package utils

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.Logger {
	cfg := zap.NewProductionConfig()
	l, err := cfg.Build()
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func ensureDB(t *testing.T) {
	l := testLogger(t)
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Setenv("POSTGRES_HOST", "localhost")
	}
	if os.Getenv("POSTGRES_PORT") == "" {
		t.Setenv("POSTGRES_PORT", "5432")
	}
	if os.Getenv("POSTGRES_USER") == "" {
		t.Setenv("POSTGRES_USER", "postgres")
	}
	if os.Getenv("POSTGRES_PASSWORD") == "" {
		t.Setenv("POSTGRES_PASSWORD", "postgres")
	}
	if os.Getenv("POSTGRES_DB") == "" {
		t.Setenv("POSTGRES_DB", "translation_bleu")
	}
	old := DB
	t.Cleanup(func() {
		if DB != nil && DB != old {
			DB.Close()
		}
		DB = old
	})
	if err := InitDB(l); err != nil {
		t.Skip("db not available")
	}
	if err := CreateSchema(l); err != nil {
		t.Fatalf("schema: %v", err)
	}
}

func TestCreateSchemaStatements(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS bleu_results`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_bleu_results_job`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, CreateSchema(zap.NewNop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchemaWithoutDB(t *testing.T) {
	old := DB
	DB = nil
	t.Cleanup(func() { DB = old })
	assert.Error(t, CreateSchema(zap.NewNop()))
}

func TestUpsertOverwritesAndKeepsNaN(t *testing.T) {
	ensureDB(t)
	ctx := context.Background()
	_, err := DB.ExecContext(ctx, `DELETE FROM bleu_results WHERE job = $1`, "it-job")
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	row := sampleRow()
	row.Job = "it-job"
	row.BLEU = math.NaN()
	row.Precisions[3] = math.NaN()
	if err := UpsertResult(ctx, row); err != nil {
		t.Fatalf("insert: %v", err)
	}

	row.BLEU = 0.25
	row.UpdatedAt = row.UpdatedAt.Add(time.Minute)
	if err := UpsertResult(ctx, row); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := GetResult(ctx, "it-job")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BLEU != 0.25 {
		t.Fatalf("expected updated bleu, got %v", got.BLEU)
	}
	if !math.IsNaN(got.Precisions[3]) {
		t.Fatalf("expected NaN precision, got %v", got.Precisions[3])
	}
}
