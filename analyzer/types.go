package analyzer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MaxOrder is the highest n-gram order that contributes to the score
const MaxOrder = 4

// TranslationRecord is one parsed corpus line
type TranslationRecord struct {
	SourceID           string
	HumanReference     string
	MachineTranslation string
}

// GroupedTranslation holds every human reference that shares a source id.
// HumanReferences is never empty.
type GroupedTranslation struct {
	SourceID           string
	HumanReferences    []string
	MachineTranslation string
}

// NgramCount maps a space-joined token window to its number of occurrences
type NgramCount map[string]int

// Lengths are the corpus-wide token totals used by the brevity penalty
type Lengths struct {
	Reference   int `json:"reference"`
	Translation int `json:"translation"`
}

// Ratio is a float64 that survives JSON encoding when it is NaN or infinite.
// Non-finite values are written as the strings "NaN", "+Inf" and "-Inf".
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(f)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid ratio %q: %w", s, err)
		}
		*r = Ratio(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}
