package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/rohankatakam/dbstats/internal/errors"
	"github.com/rohankatakam/dbstats/internal/models"
	"github.com/rohankatakam/dbstats/internal/stats"
)

// Formatter writes a collected report
type Formatter interface {
	Format(report *stats.Report, w io.Writer) error
}

// Format names an output format
type Format string

const (
	FormatGrid Format = "grid" // Human-readable tables (default)
	FormatJSON Format = "json" // Machine-readable document
)

// NewFormatter creates the formatter for a format name
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatGrid, "":
		return &GridFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, errors.ValidationErrorf("unknown output format %q (expected grid or json)", format)
	}
}

var (
	nodeColumns = []Column{
		{Header: "Node Label"},
		{Header: "Count", Align: AlignRight},
		{Header: "Index Name"},
		{Header: "Index Type"},
		{Header: "Indexed Property"},
	}
	relationshipColumns = []Column{
		{Header: "Relationship"},
		{Header: "Start Node"},
		{Header: "End Node"},
		{Header: "Count", Align: AlignRight},
	}
)

// GridFormatter prints the node and relationship tables
type GridFormatter struct{}

func (f *GridFormatter) Format(report *stats.Report, w io.Writer) error {
	nodeRows := make([][]string, 0, len(report.Nodes))
	for _, r := range report.Nodes {
		nodeRows = append(nodeRows, []string{
			r.Label,
			strconv.FormatInt(r.Count, 10),
			r.IndexName,
			r.IndexType,
			r.IndexedProperties,
		})
	}

	relRows := make([][]string, 0, len(report.Relationships))
	for _, r := range report.Relationships {
		relRows = append(relRows, []string{
			r.RelType,
			r.StartLabel,
			r.EndLabel,
			strconv.FormatInt(r.Count, 10),
		})
	}

	if _, err := fmt.Fprintln(w, "\nNode Statistics:"); err != nil {
		return err
	}
	if err := RenderGrid(w, nodeColumns, nodeRows); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\nRelationship Statistics:"); err != nil {
		return err
	}
	return RenderGrid(w, relationshipColumns, relRows)
}

// JSONFormatter prints the report as a single JSON document
type JSONFormatter struct{}

type jsonReport struct {
	Nodes         []models.NodeStatRow         `json:"nodes"`
	Relationships []models.RelationshipStatRow `json:"relationships"`
	Warnings      []string                     `json:"warnings"`
}

func (f *JSONFormatter) Format(report *stats.Report, w io.Writer) error {
	doc := jsonReport{
		Nodes:         report.Nodes,
		Relationships: report.Relationships,
		Warnings:      make([]string, 0, len(report.Warnings)),
	}
	if doc.Nodes == nil {
		doc.Nodes = []models.NodeStatRow{}
	}
	if doc.Relationships == nil {
		doc.Relationships = []models.RelationshipStatRow{}
	}
	for _, warning := range report.Warnings {
		doc.Warnings = append(doc.Warnings, warning.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
