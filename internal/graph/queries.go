package graph

// Read queries issued by dbstats. The text of the first three is kept
// stable so output can be compared against older runs.
const (
	// LabelCountsQuery counts nodes per label; a node with two labels is
	// counted under both.
	LabelCountsQuery = `
		MATCH (n)
		UNWIND labels(n) as label
		WITH DISTINCT label, count(n) as count
		RETURN label, count
		ORDER BY label
	`

	// IndexCatalogQuery lists every index, node and relationship alike
	IndexCatalogQuery = "SHOW INDEXES"

	// RelationshipCountsQuery groups edges by type and the first label of
	// each endpoint inside the database.
	RelationshipCountsQuery = `
		MATCH (start)-[r]->(end)
		WITH type(r) as relType,
		     CASE WHEN size(labels(start)) > 0 THEN head(labels(start))
		          ELSE '(no label)' END as startLabel,
		     CASE WHEN size(labels(end)) > 0 THEN head(labels(end))
		          ELSE '(no label)' END as endLabel
		WITH relType, startLabel, endLabel, count(*) as count
		RETURN relType as relationshipType, startLabel, endLabel, count
		ORDER BY count DESC
	`

	// RelationshipEdgesQuery returns one row per edge for local grouping
	RelationshipEdgesQuery = `
		MATCH (start)-[r]->(end)
		RETURN type(r) as relationshipType,
		       CASE WHEN size(labels(start)) > 0 THEN head(labels(start))
		            ELSE '(no label)' END as startLabel,
		       CASE WHEN size(labels(end)) > 0 THEN head(labels(end))
		            ELSE '(no label)' END as endLabel
	`
)
