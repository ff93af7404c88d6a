package handlers

import (
	"net/http"
	"translation-bleu-api/utils"

	"github.com/gin-gonic/gin"
)

func HandleMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"bleu_evaluations_total":         utils.EvaluationsTotal.Value(),
			"bleu_evaluation_failures_total": utils.EvaluationFailures.Value(),
			"bleu_degenerate_results_total":  utils.DegenerateResults.Value(),
			"bleu_records_parsed_total":      utils.RecordsParsed.Value(),
		})
	}
}
