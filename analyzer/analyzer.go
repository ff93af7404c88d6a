package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"translation-bleu-api/utils"

	"go.uber.org/zap"
)

// AnalysisResult is the reportable outcome of scoring one corpus
type AnalysisResult struct {
	Job            string          `json:"job"`
	BLEU           Ratio           `json:"bleu"`
	Precisions     [MaxOrder]Ratio `json:"precisions"`
	BrevityPenalty Ratio           `json:"brevity_penalty"`
	Lengths        Lengths         `json:"lengths"`
	Records        int             `json:"records"`
	Groups         int             `json:"groups"`
	SkippedLines   int             `json:"skipped_lines"`
	Grouping       string          `json:"grouping"`
	Policy         string          `json:"reference_policy"`
	Degenerate     bool            `json:"degenerate"`
	Timestamp      time.Time       `json:"timestamp"`
}

// AnalyzeCorpus downloads a TSV corpus from object storage and scores it
func AnalyzeCorpus(ctx context.Context, logger *zap.Logger, bucket, corpusFilePath string, opts Options) (*AnalysisResult, error) {
	logger.Info("Starting corpus analysis process")

	data, err := utils.DownloadS3Object(ctx, bucket, corpusFilePath)
	if err != nil {
		logger.Error("File download failed", zap.Error(err))
		return nil, fmt.Errorf("failed to download corpus file: %w", err)
	}
	logger.Debug("Successfully downloaded corpus file", zap.Int("size_bytes", len(data)))

	result, err := AnalyzeReader(logger, bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	result.Job = extractJobFromPath(corpusFilePath)
	return result, nil
}

// AnalyzeFile scores the TSV corpus at path. Failing to open the file is
// reported before any line is read.
func AnalyzeFile(logger *zap.Logger, path string, opts Options) (*AnalysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	result, err := AnalyzeReader(logger, f, opts)
	if err != nil {
		return nil, err
	}
	result.Job = path
	return result, nil
}

// AnalyzeReader parses, groups and scores a TSV corpus read from r
func AnalyzeReader(logger *zap.Logger, r io.Reader, opts Options) (*AnalysisResult, error) {
	if opts.Policy == nil {
		opts.Policy = SummedReferences{}
	}
	if opts.Grouping == "" {
		opts.Grouping = GroupConsecutive
	}

	corpus, err := ReadCorpus(r)
	if err != nil {
		utils.EvaluationFailures.Add(1)
		logger.Error("Corpus parsing failed", zap.Error(err))
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	if corpus.SkippedLines > 0 {
		logger.Debug("Skipped undecodable lines", zap.Int("skipped", corpus.SkippedLines))
	}
	utils.RecordsParsed.Add(int64(len(corpus.Records)))

	start := time.Now()
	result, err := Evaluate(corpus, opts)
	if err != nil {
		utils.EvaluationFailures.Add(1)
		logger.Error("Metrics computation failed", zap.Error(err))
		return nil, fmt.Errorf("failed to compute metrics: %w", err)
	}
	utils.EvaluationsTotal.Add(1)

	if result.Degenerate() {
		utils.DegenerateResults.Add(1)
		logger.Warn("Corpus is degenerate, score is not meaningful",
			zap.Int("translation_length", result.Lengths.Translation),
			zap.Float64s("precisions", result.Precisions[:]))
	}

	logger.Info("Corpus analysis completed successfully",
		zap.Float64("bleu", result.Score),
		zap.Float64("brevity_penalty", result.BrevityPenalty),
		zap.Int("groups", result.Groups),
		zap.Duration("elapsed", time.Since(start)))

	return newAnalysisResult(result, opts), nil
}

func newAnalysisResult(r *Result, opts Options) *AnalysisResult {
	out := &AnalysisResult{
		BLEU:           Ratio(r.Score),
		BrevityPenalty: Ratio(r.BrevityPenalty),
		Lengths:        r.Lengths,
		Records:        r.Records,
		Groups:         r.Groups,
		SkippedLines:   r.SkippedLines,
		Grouping:       string(opts.Grouping),
		Policy:         opts.Policy.Name(),
		Degenerate:     r.Degenerate(),
		Timestamp:      time.Now().UTC(),
	}
	for i, p := range r.Precisions {
		out.Precisions[i] = Ratio(p)
	}
	return out
}

// ToRow converts the result into its database representation
func (a *AnalysisResult) ToRow() utils.ResultRow {
	row := utils.ResultRow{
		Job:               a.Job,
		BLEU:              float64(a.BLEU),
		BrevityPenalty:    float64(a.BrevityPenalty),
		ReferenceLength:   a.Lengths.Reference,
		TranslationLength: a.Lengths.Translation,
		Records:           a.Records,
		Groups:            a.Groups,
		SkippedLines:      a.SkippedLines,
		Grouping:          a.Grouping,
		Policy:            a.Policy,
		CreatedAt:         a.Timestamp,
		UpdatedAt:         a.Timestamp,
	}
	for i, p := range a.Precisions {
		row.Precisions[i] = float64(p)
	}
	return row
}

// FromRow rebuilds a result loaded from the database
func FromRow(row utils.ResultRow) *AnalysisResult {
	r := &Result{
		BrevityPenalty: row.BrevityPenalty,
		Lengths:        Lengths{Reference: row.ReferenceLength, Translation: row.TranslationLength},
		Score:          row.BLEU,
	}
	copy(r.Precisions[:], row.Precisions[:])

	out := &AnalysisResult{
		Job:            row.Job,
		BLEU:           Ratio(row.BLEU),
		BrevityPenalty: Ratio(row.BrevityPenalty),
		Lengths:        r.Lengths,
		Records:        row.Records,
		Groups:         row.Groups,
		SkippedLines:   row.SkippedLines,
		Grouping:       row.Grouping,
		Policy:         row.Policy,
		Degenerate:     r.Degenerate(),
		Timestamp:      row.UpdatedAt,
	}
	for i, p := range row.Precisions {
		out.Precisions[i] = Ratio(p)
	}
	return out
}

// extractJobFromPath extracts a job identifier from a file path
// For example: "job-123/job-123_corpus.tsv" -> "job-123"
func extractJobFromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return path
}
