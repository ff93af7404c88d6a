package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"translation-bleu-api/analyzer"
	"translation-bleu-api/utils"
	valkeystore "translation-bleu-api/valkey"

	"github.com/valkey-io/valkey-go"
	"go.uber.org/zap"
)

const CorpusUploadedChannel = "corpus_uploaded"

// CorpusUploadedPayload represents the data structure for corpus_uploaded events.
// CorpusFile may also be a full s3://bucket/key URI.
type CorpusUploadedPayload struct {
	Job        string `json:"job"`
	Bucket     string `json:"bucket"`
	CorpusFile string `json:"corpusFile"`
}

// Processor scores corpora announced on the channel
type Processor struct {
	Logger        *zap.Logger
	Options       analyzer.Options
	DefaultBucket string
}

// StartSubscribers starts the corpus subscriber
func StartSubscribers(ctx context.Context, p *Processor) {
	go startSubscriber(ctx, p.Logger, CorpusUploadedChannel, p.processCorpusJob)
}

func startSubscriber(ctx context.Context, logger *zap.Logger, channel string, processor func(context.Context, string)) {
	sugar := logger.Sugar()
	sugar.Infow("Message subscriber started",
		"channel", channel)

	vkClient := valkeystore.RawClient
	for {
		err := vkClient.Receive(ctx, vkClient.B().Subscribe().Channel(channel).Build(), func(msg valkey.PubSubMessage) {
			if strings.TrimSpace(msg.Message) == "" {
				sugar.Warn("Received empty message from pub/sub")
				return
			}
			go processor(ctx, msg.Message)
		})
		if ctx.Err() != nil {
			sugar.Infow("Message subscriber stopped", "channel", channel)
			return
		}
		sugar.Errorw("Subscription interrupted",
			"channel", channel,
			"error", err)
		time.Sleep(5 * time.Second) // Wait before resubscribing
	}
}

// ParsePayload decodes a corpus_uploaded message. Besides the JSON payload a
// bare or quoted job id is accepted, in which case the corpus is expected at
// the default location in defaultBucket.
func ParsePayload(message, defaultBucket string) (CorpusUploadedPayload, error) {
	var payload CorpusUploadedPayload
	if err := json.Unmarshal([]byte(message), &payload); err != nil {
		job := strings.TrimSpace(message)
		if unquoted, err := strconv.Unquote(job); err == nil {
			job = strings.TrimSpace(unquoted)
		}
		if job == "" {
			return payload, fmt.Errorf("empty corpus job message")
		}
		payload = CorpusUploadedPayload{Job: job}
	}

	if strings.HasPrefix(payload.CorpusFile, "s3://") {
		bucket, key, err := utils.ParseS3URI(payload.CorpusFile)
		if err != nil {
			return payload, err
		}
		payload.Bucket, payload.CorpusFile = bucket, key
	}
	if payload.Job == "" {
		return payload, fmt.Errorf("corpus job message without job id")
	}
	if payload.Bucket == "" {
		payload.Bucket = defaultBucket
	}
	if payload.CorpusFile == "" {
		payload.CorpusFile = utils.CorpusKey(payload.Job)
	}
	return payload, nil
}

func (p *Processor) processCorpusJob(ctx context.Context, message string) {
	sugar := p.Logger.Sugar()

	payload, err := ParsePayload(message, p.DefaultBucket)
	if err != nil {
		sugar.Errorw("Invalid corpus job message", "error", err)
		return
	}

	sugar.Infow("Processing corpus analysis request", "job", payload.Job)

	result, err := analyzer.AnalyzeCorpus(ctx, p.Logger, payload.Bucket, payload.CorpusFile, p.Options)
	if err != nil {
		sugar.Errorw("Analysis process failed",
			"job", payload.Job,
			"error", err)
		return
	}
	result.Job = payload.Job

	if err := StoreAnalysisResult(ctx, p.Logger, result); err != nil {
		sugar.Errorw("Result storage failed",
			"job", payload.Job,
			"error", err)
		return
	}

	sugar.Infow("Corpus analysis completed successfully", "job", payload.Job)
}

// StoreAnalysisResult stores the analysis result in both database and cache
func StoreAnalysisResult(ctx context.Context, logger *zap.Logger, result *analyzer.AnalysisResult) error {
	sugar := logger.Sugar()

	if err := utils.UpsertResult(ctx, result.ToRow()); err != nil {
		sugar.Errorw("Database storage failed",
			"error", err)
		return err
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		sugar.Errorw("Data marshaling failed",
			"error", err)
		return err
	}

	if err := valkeystore.CacheResult(ctx, result.Job, string(jsonData)); err != nil {
		sugar.Errorw("Cache storage failed",
			"error", err)
		return err
	}

	return nil
}
