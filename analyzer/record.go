package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// minFields is the smallest column count from which a record can be built:
// the source id lives at index 1.
const minFields = 2

// ErrMalformedRecord matches every *MalformedRecordError
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a corpus line with too few tab separated fields
type MalformedRecordError struct {
	LineNumber int
	Line       string
	Fields     int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: got %d field(s), need at least %d: %q",
		e.LineNumber, e.Fields, minFields, e.Line)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// ParseRecord splits a tab-delimited line into a TranslationRecord.
// Column 1 is the source id, the second-to-last column the human reference and
// the last column the machine translation; any other column is ignored.
func ParseRecord(line string) (TranslationRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < minFields {
		return TranslationRecord{}, &MalformedRecordError{Line: line, Fields: len(fields)}
	}
	return TranslationRecord{
		SourceID:           fields[1],
		HumanReference:     fields[len(fields)-2],
		MachineTranslation: fields[len(fields)-1],
	}, nil
}

// ParseRecords parses lines in order and stops at the first malformed one
func ParseRecords(lines []Line) ([]TranslationRecord, error) {
	records := make([]TranslationRecord, 0, len(lines))
	for _, l := range lines {
		record, err := ParseRecord(l.Text)
		if err != nil {
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.LineNumber = l.Number
			}
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
