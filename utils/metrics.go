package utils

import (
	"expvar"
)

var EvaluationsTotal = expvar.NewInt("bleu_evaluations_total")
var EvaluationFailures = expvar.NewInt("bleu_evaluation_failures_total")
var DegenerateResults = expvar.NewInt("bleu_degenerate_results_total")
var RecordsParsed = expvar.NewInt("bleu_records_parsed_total")
