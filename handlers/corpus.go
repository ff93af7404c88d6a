package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"regexp"
	"translation-bleu-api/analyzer"
	"translation-bleu-api/subscriber"
	"translation-bleu-api/utils"
	valkeystore "translation-bleu-api/valkey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var jobPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// HandleCorpusUpload stores an uploaded TSV corpus in object storage
func HandleCorpusUpload(logger *zap.Logger, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		job := c.PostForm("job")
		if job == "" {
			job = uuid.NewString()
		}
		if !jobPattern.MatchString(job) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "job may only contain letters, digits, '.', '_' and '-'"})
			return
		}

		corpusFile, err := c.FormFile("corpus")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "corpus file is required (form key: corpus)"})
			return
		}

		if filepath.Ext(corpusFile.Filename) != ".tsv" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only .tsv files are allowed"})
			return
		}

		src, err := corpusFile.Open()
		if err != nil {
			logger.Error("File processing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process corpus file"})
			return
		}
		defer src.Close()

		key := utils.CorpusKey(job)
		if err := utils.UploadFile(c.Request.Context(), src, bucket, key); err != nil {
			logger.Error("File upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload corpus file"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Corpus uploaded successfully",
			"job":     job,
			"file":    key,
		})
	}
}

// HandleTriggerCorpusAnalysis queues the analysis of an uploaded corpus
func HandleTriggerCorpusAnalysis(logger *zap.Logger, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		job := c.Param("job")
		if !jobPattern.MatchString(job) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "job is required"})
			return
		}

		payload := subscriber.CorpusUploadedPayload{
			Job:        job,
			Bucket:     bucket,
			CorpusFile: utils.CorpusKey(job),
		}

		message, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Message serialization failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create analysis request"})
			return
		}

		if err := valkeystore.Publish(c.Request.Context(), subscriber.CorpusUploadedChannel, string(message)); err != nil {
			logger.Error("Message publishing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger analysis"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"message": "Analysis triggered successfully",
			"job":     job,
		})
	}
}

// HandleListResults returns every stored corpus result, newest first
func HandleListResults(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := utils.ListResults(c.Request.Context())
		if err != nil {
			logger.Error("Database query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis results"})
			return
		}

		results := make([]*analyzer.AnalysisResult, 0, len(rows))
		for _, row := range rows {
			results = append(results, analyzer.FromRow(row))
		}
		c.JSON(http.StatusOK, results)
	}
}
