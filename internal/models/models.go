package models

// Placeholder values shown when a label has no index or a node has no label
const (
	NoIndex       = "No Index"
	NotApplicable = "N/A"
	NoLabel       = "(no label)"
)

// LabelCount is the number of nodes carrying a label
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// IndexDescriptor is one entry of the database's index catalog.
// LabelsOrTypes holds node labels or relationship types depending on
// EntityType; LOOKUP indexes have neither.
type IndexDescriptor struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	EntityType    string   `json:"entity_type,omitempty"`
	State         string   `json:"state,omitempty"`
	LabelsOrTypes []string `json:"labels_or_types"`
	Properties    []string `json:"properties"`
}

// AppliesTo reports whether the index covers the label or type
func (d IndexDescriptor) AppliesTo(labelOrType string) bool {
	for _, l := range d.LabelsOrTypes {
		if l == labelOrType {
			return true
		}
	}
	return false
}

// EdgeSample is one relationship seen between two first labels.
// Count is 1 for a single edge; grouped rows from the database carry
// their group size.
type EdgeSample struct {
	RelType    string `json:"relationship_type"`
	StartLabel string `json:"start_label"`
	EndLabel   string `json:"end_label"`
	Count      int64  `json:"count"`
}

// NodeStatRow is one (label, index) line of the node table
type NodeStatRow struct {
	Label             string `json:"label"`
	Count             int64  `json:"count"`
	IndexName         string `json:"index_name"`
	IndexType         string `json:"index_type"`
	IndexedProperties string `json:"indexed_properties"`
}

// RelationshipStatRow is one (type, start, end) line of the relationship table
type RelationshipStatRow struct {
	RelType    string `json:"relationship_type"`
	StartLabel string `json:"start_label"`
	EndLabel   string `json:"end_label"`
	Count      int64  `json:"count"`
}
