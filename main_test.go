package main

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"translation-bleu-api/analyzer"
	"translation-bleu-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEvaluationOptions(t *testing.T) {
	opts, err := evaluationOptions(utils.Config{Grouping: "by_key", ReferencePolicy: "canonical", Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, analyzer.GroupByKey, opts.Grouping)
	assert.Equal(t, "canonical", opts.Policy.Name())
	assert.True(t, opts.Parallel)
	assert.NotNil(t, opts.Selection)

	_, err = evaluationOptions(utils.Config{Grouping: "sideways"})
	assert.Error(t, err)
	_, err = evaluationOptions(utils.Config{ReferencePolicy: "closest"})
	assert.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	result := &analyzer.AnalysisResult{Job: "job-1", BLEU: 0.25}

	var text bytes.Buffer
	require.NoError(t, writeResult(&text, utils.OutputText, result))
	assert.Equal(t, "0.25\n", text.String())

	var js bytes.Buffer
	require.NoError(t, writeResult(&js, utils.OutputJSON, result))
	assert.Contains(t, js.String(), `"bleu": 0.25`)

	text.Reset()
	result.BLEU = analyzer.Ratio(math.NaN())
	require.NoError(t, writeResult(&text, utils.OutputText, result))
	assert.Equal(t, "NaN\n", text.String())
}

func TestRouterHealthcheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newRouter(zaptest.NewLogger(t), utils.Config{Bucket: "bleu-corpora"}, analyzer.DefaultOptions())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}
