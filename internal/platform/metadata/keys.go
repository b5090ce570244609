package metadata

// --- SQLite Keys ---
// These keys are used for the 'key' column in the 'metadata' SQLite table.
const (
	// SchemaVersionKey stores the logical schema version of the four core
	// tables (users / bloom_words / vote_records / questions). Bumped manually
	// whenever a migration changes their shape.
	SchemaVersionKey = "schema_version"

	// LexiconFingerprintKey stores the row count of the verb lexicon that was
	// loaded on the last startup, so operators can spot a truncated CSV.
	LexiconFingerprintKey = "lexicon_row_count"
)

// CurrentSchemaVersion 是当前代码所期望的逻辑表结构版本。
const CurrentSchemaVersion = "1"
