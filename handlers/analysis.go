package handlers

import (
	"errors"
	"net/http"
	"translation-bleu-api/analyzer"
	"translation-bleu-api/utils"
	valkeystore "translation-bleu-api/valkey"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleGetAnalysis returns the analysis result of a job, from the cache when
// possible and from the database otherwise
func HandleGetAnalysis(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sugar := logger.Sugar()
		job := c.Param("job")
		if job == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "job is required"})
			return
		}

		data, err := valkeystore.GetCachedResult(c.Request.Context(), job)
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(data))
			return
		}
		if !errors.Is(err, valkeystore.ErrCacheMiss) {
			sugar.Warnw("Cache lookup failed, falling back to database",
				"job", job,
				"error", err)
		}

		row, err := utils.GetResult(c.Request.Context(), job)
		if errors.Is(err, utils.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Analysis not found",
				"message": "Analysis may still be processing or job is invalid",
			})
			return
		}
		if err != nil {
			sugar.Errorw("Analysis retrieval failed",
				"job", job,
				"error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis"})
			return
		}

		c.JSON(http.StatusOK, analyzer.FromRow(*row))
	}
}
