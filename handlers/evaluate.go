package handlers

import (
	"errors"
	"net/http"
	"translation-bleu-api/analyzer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleEvaluate scores a TSV corpus sent as the request body and returns the
// result without storing it
func HandleEvaluate(logger *zap.Logger, opts analyzer.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain a TSV corpus"})
			return
		}

		result, err := analyzer.AnalyzeReader(logger, c.Request.Body, opts)
		if err != nil {
			var malformed *analyzer.MalformedRecordError
			if errors.As(err, &malformed) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error": "Malformed record",
					"line":  malformed.LineNumber,
				})
				return
			}
			logger.Error("Corpus evaluation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate corpus"})
			return
		}

		result.Job = c.Query("job")
		c.JSON(http.StatusOK, result)
	}
}
