package stats

import (
	"sort"
	"strings"

	"github.com/rohankatakam/dbstats/internal/models"
)

// JoinNodeIndexes fans each label out to one row per index covering it, or
// a single "No Index" row when nothing covers it. Label order and catalog
// order are preserved. An empty catalog sends every label to the fallback.
func JoinNodeIndexes(labels []models.LabelCount, indexes []models.IndexDescriptor) []models.NodeStatRow {
	rows := make([]models.NodeStatRow, 0, len(labels))
	for _, lc := range labels {
		matched := false
		for _, idx := range indexes {
			if !idx.AppliesTo(lc.Label) {
				continue
			}
			matched = true
			rows = append(rows, models.NodeStatRow{
				Label:             lc.Label,
				Count:             lc.Count,
				IndexName:         idx.Name,
				IndexType:         idx.Type,
				IndexedProperties: strings.Join(idx.Properties, ", "),
			})
		}

		if !matched {
			rows = append(rows, models.NodeStatRow{
				Label:             lc.Label,
				Count:             lc.Count,
				IndexName:         models.NoIndex,
				IndexType:         models.NotApplicable,
				IndexedProperties: models.NotApplicable,
			})
		}
	}
	return rows
}

type edgeKey struct {
	relType, start, end string
}

// AggregateRelationships groups samples by (type, start label, end label),
// sums their counts and sorts groups by count, largest first. Groups with
// equal counts stay in the order they were first seen.
func AggregateRelationships(samples []models.EdgeSample) []models.RelationshipStatRow {
	positions := make(map[edgeKey]int, len(samples))
	rows := make([]models.RelationshipStatRow, 0)

	for _, s := range samples {
		key := edgeKey{s.RelType, s.StartLabel, s.EndLabel}
		if i, ok := positions[key]; ok {
			rows[i].Count += s.Count
			continue
		}
		positions[key] = len(rows)
		rows = append(rows, models.RelationshipStatRow{
			RelType:    s.RelType,
			StartLabel: s.StartLabel,
			EndLabel:   s.EndLabel,
			Count:      s.Count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}
