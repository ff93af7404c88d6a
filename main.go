package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"translation-bleu-api/analyzer"
	"translation-bleu-api/handlers"
	"translation-bleu-api/subscriber"
	"translation-bleu-api/utils"

	valkeystore "translation-bleu-api/valkey"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	opts, err := evaluationOptions(cfg)
	if err != nil {
		sugar.Fatalw("invalid evaluation options",
			"error", err)
	}

	switch cfg.Mode {
	case utils.ModeServer:
		runServer(logger, cfg, opts)
	default:
		runBatch(logger, cfg, opts)
	}
}

func evaluationOptions(cfg utils.Config) (analyzer.Options, error) {
	opts := analyzer.DefaultOptions()

	grouping, err := analyzer.ParseGroupingStrategy(cfg.Grouping)
	if err != nil {
		return opts, err
	}
	policy, err := analyzer.ParseReferencePolicy(cfg.ReferencePolicy)
	if err != nil {
		return opts, err
	}

	opts.Grouping = grouping
	opts.Policy = policy
	opts.Parallel = cfg.Parallel
	return opts, nil
}

// runBatch scores the corpus at the configured path and prints the result
func runBatch(logger *zap.Logger, cfg utils.Config, opts analyzer.Options) {
	sugar := logger.Sugar()

	result, err := analyzer.AnalyzeFile(logger, cfg.InputPath, opts)
	if err != nil {
		sugar.Fatalw("corpus evaluation failed",
			"path", cfg.InputPath,
			"error", err)
	}

	if err := writeResult(os.Stdout, cfg.Output, result); err != nil {
		sugar.Fatalw("failed to write result",
			"error", err)
	}
}

func writeResult(w io.Writer, format string, result *analyzer.AnalysisResult) error {
	if format == utils.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err := fmt.Fprintln(w, strconv.FormatFloat(float64(result.BLEU), 'f', -1, 64))
	return err
}

func runServer(logger *zap.Logger, cfg utils.Config, opts analyzer.Options) {
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Valkey
	if err := valkeystore.InitValkey(logger); err != nil {
		sugar.Fatalw("failed to init valkey",
			"error", err)
	}
	defer valkeystore.Close()

	// Initialize PostgreSQL database
	if err := utils.InitDB(logger); err != nil {
		sugar.Fatalw("failed to init database",
			"error", err)
	}
	defer utils.CloseDB(logger)

	if err := utils.CreateSchema(logger); err != nil {
		sugar.Fatalw("failed to create database schema",
			"error", err)
	}

	// Initialize S3
	if err := utils.InitS3(logger); err != nil {
		sugar.Fatalw("failed to init s3",
			"error", err)
	}

	subscriber.StartSubscribers(ctx, &subscriber.Processor{
		Logger:        logger,
		Options:       opts,
		DefaultBucket: cfg.Bucket,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: newRouter(logger, cfg, opts),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("server shutdown failed", "error", err)
		}
	}()

	sugar.Infow("Running on port",
		"port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		sugar.Fatalw("server failed",
			"error", err)
	}
}

func newRouter(logger *zap.Logger, cfg utils.Config, opts analyzer.Options) *gin.Engine {
	r := gin.New()
	logger.Sugar().Info("Creating router")

	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	r.POST("/bleu/evaluate", handlers.HandleEvaluate(logger, opts))
	r.POST("/bleu/upload", handlers.HandleCorpusUpload(logger, cfg.Bucket))
	r.POST("/bleu/trigger/:job", handlers.HandleTriggerCorpusAnalysis(logger, cfg.Bucket))
	r.GET("/bleu/results", handlers.HandleListResults(logger))
	r.GET("/bleu/results/:job", handlers.HandleGetAnalysis(logger))

	r.GET("/metrics", handlers.HandleMetrics())
	r.GET("/db-status", handlers.HandleDBStatus())

	r.GET("/healthcheck", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	return r
}
