package driver

// IndexQueries are run once at startup by BuildIndices.
var IndexQueries = []string{
	"CREATE INDEX ON :User(user_id);",
	"CREATE INDEX ON :Batch(uuid);",
	"CREATE INDEX ON :Document(uuid);",
	"CREATE INDEX ON :Conflict(uuid);",
}

const (
	InitUserQuery = `
		MERGE (u:User {user_id: $user_id})
		ON CREATE SET u.docs_analyzed = 0, u.reports_generated = 0
		RETURN u.user_id AS user_id
	`

	CreateBatchQuery = `
		MATCH (u:User {user_id: $user_id})
		CREATE (b:Batch {uuid: $uuid, user_id: $user_id, created_at: $created_at})
		CREATE (u)-[:OWNS]->(b)
		RETURN b.uuid AS uuid
	`

	GetBatchQuery = `
		MATCH (b:Batch {uuid: $batch_id})
		OPTIONAL MATCH (b)-[:HAS_DOCUMENT]->(d:Document)
		WITH b, count(d) AS document_count
		OPTIONAL MATCH (b)-[:HAS_CONFLICT]->(c:Conflict)
		RETURN b.uuid AS uuid, b.user_id AS user_id, document_count, count(c) AS conflict_count
	`

	AddDocumentQuery = `
		MATCH (b:Batch {uuid: $batch_id})
		OPTIONAL MATCH (b)-[:HAS_DOCUMENT]->(existing:Document)
		WITH b, count(existing) AS seq
		CREATE (b)-[:HAS_DOCUMENT]->(d:Document {uuid: $uuid, name: $name, text: $text, seq: seq})
		RETURN d.uuid AS uuid
	`

	GetDocumentsQuery = `
		MATCH (b:Batch {uuid: $batch_id})-[:HAS_DOCUMENT]->(d:Document)
		RETURN d.name AS name, d.text AS text
		ORDER BY d.seq
	`

	ClearConflictsQuery = `
		MATCH (b:Batch {uuid: $batch_id})-[:HAS_CONFLICT]->(c:Conflict)
		DETACH DELETE c
	`

	SaveConflictsQuery = `
		MATCH (b:Batch {uuid: $batch_id})
		UNWIND $conflicts AS cf
		CREATE (b)-[:HAS_CONFLICT]->(c:Conflict {
			uuid: cf.uuid,
			seq: cf.seq,
			doc_a: cf.doc_a,
			span_a: cf.span_a,
			doc_b: cf.doc_b,
			span_b: cf.span_b,
			type: cf.type,
			explanation: cf.explanation
		})
		RETURN count(c) AS saved
	`

	GetConflictsQuery = `
		MATCH (b:Batch {uuid: $batch_id})-[:HAS_CONFLICT]->(c:Conflict)
		RETURN c.doc_a AS doc_a, c.span_a AS span_a, c.doc_b AS doc_b, c.span_b AS span_b,
			c.type AS type, c.explanation AS explanation
		ORDER BY c.seq
	`

	IncrementCounterQuery = `
		MATCH (u:User {user_id: $user_id})
		SET u.docs_analyzed = u.docs_analyzed + CASE WHEN $counter = 'docs_analyzed' THEN $n ELSE 0 END,
			u.reports_generated = u.reports_generated + CASE WHEN $counter = 'reports_generated' THEN $n ELSE 0 END
		RETURN u.docs_analyzed AS docs_analyzed, u.reports_generated AS reports_generated
	`

	GetTotalsQuery = `
		MATCH (u:User {user_id: $user_id})
		RETURN u.docs_analyzed AS docs_analyzed, u.reports_generated AS reports_generated
	`
)
