package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"BLEU_MODE", "BLEU_INPUT_PATH", "BLEU_OUTPUT", "BLEU_GROUPING",
		"BLEU_REFERENCE_POLICY", "BLEU_PARALLEL", "LOG_LEVEL", "APP_PORT", "BLEU_BUCKET"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Mode:            ModeBatch,
		InputPath:       DefaultInputPath,
		Output:          OutputText,
		Grouping:        "consecutive",
		ReferencePolicy: "summed",
		LogLevel:        "info",
		Port:            "8080",
		Bucket:          "bleu-corpora",
	}, cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BLEU_MODE", "server")
	t.Setenv("BLEU_INPUT_PATH", "/data/corpus.tsv")
	t.Setenv("BLEU_OUTPUT", "json")
	t.Setenv("BLEU_PARALLEL", "true")
	t.Setenv("BLEU_GROUPING", "by_key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, "/data/corpus.tsv", cfg.InputPath)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, "by_key", cfg.Grouping)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("BLEU_MODE", "stream")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("BLEU_MODE", "batch")
	t.Setenv("BLEU_OUTPUT", "xml")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("BLEU_TEST_INT", "12")
	t.Setenv("BLEU_TEST_BAD_INT", "twelve")
	t.Setenv("BLEU_TEST_BOOL", "1")
	t.Setenv("BLEU_TEST_BAD_BOOL", "maybe")
	t.Setenv("BLEU_TEST_EMPTY", "")

	assert.Equal(t, 12, GetEnvInt("BLEU_TEST_INT", 3))
	assert.Equal(t, 3, GetEnvInt("BLEU_TEST_BAD_INT", 3))
	assert.True(t, GetEnvBool("BLEU_TEST_BOOL", false))
	assert.True(t, GetEnvBool("BLEU_TEST_BAD_BOOL", true))
	assert.Equal(t, "fallback", GetEnvOrDefault("BLEU_TEST_EMPTY", "fallback"))
	assert.Panics(t, func() { MustGetEnv("BLEU_TEST_EMPTY") })
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("chatty")
	assert.Error(t, err)
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://bleu-corpora/job-1/job-1_corpus.tsv")
	require.NoError(t, err)
	assert.Equal(t, "bleu-corpora", bucket)
	assert.Equal(t, "job-1/job-1_corpus.tsv", key)

	for _, bad := range []string{"https://example.com/a", "s3://bucket", "s3://bucket/"} {
		_, _, err := ParseS3URI(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "job-1/job-1_corpus.tsv", CorpusKey("job-1"))
}
