package graph

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rohankatakam/dbstats/internal/models"
)

// requiredInt reads a non-null integer column
func requiredInt(rec *neo4j.Record, key string) (int64, error) {
	v, isNil, err := neo4j.GetRecordValue[int64](rec, key)
	if err != nil {
		return 0, err
	}
	if isNil {
		return 0, fmt.Errorf("column %s is null", key)
	}
	return v, nil
}

// optionalString reads a string column that may be absent or null.
// Catalog columns differ between server versions.
func optionalString(rec *neo4j.Record, key string) (string, error) {
	raw, found := rec.Get(key)
	if !found || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("column %s: expected string, got %T", key, raw)
	}
	return s, nil
}

// catalogString reads a catalog column, using NotApplicable when the
// server does not report the column at all.
func catalogString(rec *neo4j.Record, key string) (string, error) {
	if _, found := rec.Get(key); !found {
		return models.NotApplicable, nil
	}
	return optionalString(rec, key)
}

// optionalStrings reads a list-of-strings column that may be absent or null
func optionalStrings(rec *neo4j.Record, key string) ([]string, error) {
	raw, found := rec.Get(key)
	if !found || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("column %s: expected list, got %T", key, raw)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("column %s[%d]: expected string, got %T", key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// labelOrPlaceholder reads an endpoint label, mapping null to NoLabel
func labelOrPlaceholder(rec *neo4j.Record, key string) (string, error) {
	label, err := optionalString(rec, key)
	if err != nil {
		return "", err
	}
	if label == "" {
		return models.NoLabel, nil
	}
	return label, nil
}

func decodeIndex(rec *neo4j.Record) (models.IndexDescriptor, error) {
	var (
		idx models.IndexDescriptor
		err error
	)
	if idx.Name, err = catalogString(rec, "name"); err != nil {
		return idx, err
	}
	if idx.Type, err = catalogString(rec, "type"); err != nil {
		return idx, err
	}
	if idx.EntityType, err = optionalString(rec, "entityType"); err != nil {
		return idx, err
	}
	if idx.State, err = optionalString(rec, "state"); err != nil {
		return idx, err
	}
	if idx.LabelsOrTypes, err = optionalStrings(rec, "labelsOrTypes"); err != nil {
		return idx, err
	}
	if idx.Properties, err = optionalStrings(rec, "properties"); err != nil {
		return idx, err
	}
	return idx, nil
}

// decodeEdge reads one relationship row. ok is false for rows without a
// relationship type. Rows without a count column are single edges.
func decodeEdge(rec *neo4j.Record, counted bool) (sample models.EdgeSample, ok bool, err error) {
	relType, isNil, err := neo4j.GetRecordValue[string](rec, "relationshipType")
	if err != nil || isNil {
		return sample, false, err
	}

	if sample.StartLabel, err = labelOrPlaceholder(rec, "startLabel"); err != nil {
		return sample, false, err
	}
	if sample.EndLabel, err = labelOrPlaceholder(rec, "endLabel"); err != nil {
		return sample, false, err
	}

	sample.RelType = relType
	sample.Count = 1
	if counted {
		if sample.Count, err = requiredInt(rec, "count"); err != nil {
			return sample, false, err
		}
	}
	return sample, true, nil
}
