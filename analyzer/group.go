package analyzer

import (
	"fmt"
	"sort"
)

// GroupingStrategy decides which records end up in the same group
type GroupingStrategy string

const (
	// GroupConsecutive groups runs of adjacent records with equal source ids.
	// The same id appearing again later starts a new group.
	GroupConsecutive GroupingStrategy = "consecutive"
	// GroupByKey groups every record with the same source id, in order of
	// first appearance.
	GroupByKey GroupingStrategy = "by_key"
)

// ParseGroupingStrategy maps a configuration value to a GroupingStrategy
func ParseGroupingStrategy(s string) (GroupingStrategy, error) {
	switch GroupingStrategy(s) {
	case "", GroupConsecutive:
		return GroupConsecutive, nil
	case GroupByKey:
		return GroupByKey, nil
	}
	return "", fmt.Errorf("unknown grouping strategy %q", s)
}

// SelectionPolicy picks the machine translation of a group from its records,
// which are already sorted by human reference.
type SelectionPolicy func(sorted []TranslationRecord) string

// LastBySortKey takes the machine translation of the record whose human
// reference sorts last
func LastBySortKey(sorted []TranslationRecord) string {
	return sorted[len(sorted)-1].MachineTranslation
}

// GroupTranslations partitions records by source id with the given strategy,
// sorts each partition by human reference and collapses it into one
// GroupedTranslation. A nil selection defaults to LastBySortKey.
func GroupTranslations(records []TranslationRecord, strategy GroupingStrategy, selection SelectionPolicy) []GroupedTranslation {
	if selection == nil {
		selection = LastBySortKey
	}

	var partitions [][]TranslationRecord
	switch strategy {
	case GroupByKey:
		index := make(map[string]int)
		for _, r := range records {
			i, ok := index[r.SourceID]
			if !ok {
				i = len(partitions)
				index[r.SourceID] = i
				partitions = append(partitions, nil)
			}
			partitions[i] = append(partitions[i], r)
		}
	default:
		for i, r := range records {
			if i == 0 || records[i-1].SourceID != r.SourceID {
				partitions = append(partitions, nil)
			}
			last := len(partitions) - 1
			partitions[last] = append(partitions[last], r)
		}
	}

	groups := make([]GroupedTranslation, 0, len(partitions))
	for _, part := range partitions {
		sort.SliceStable(part, func(i, j int) bool {
			return part[i].HumanReference < part[j].HumanReference
		})
		refs := make([]string, len(part))
		for i, r := range part {
			refs[i] = r.HumanReference
		}
		groups = append(groups, GroupedTranslation{
			SourceID:           part[0].SourceID,
			HumanReferences:    refs,
			MachineTranslation: selection(part),
		})
	}
	return groups
}

// Flatten expands groups back into one record per human reference
func Flatten(groups []GroupedTranslation) []TranslationRecord {
	var records []TranslationRecord
	for _, g := range groups {
		for _, ref := range g.HumanReferences {
			records = append(records, TranslationRecord{
				SourceID:           g.SourceID,
				HumanReference:     ref,
				MachineTranslation: g.MachineTranslation,
			})
		}
	}
	return records
}
