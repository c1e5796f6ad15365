package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldBackup     = "backup"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldMethod  = "method"
	FieldMethods = "methods"
	FieldGrammar = "grammar"
	FieldJobs    = "jobs"

	// Embedding fields.
	FieldBits     = "bits"
	FieldCapacity = "capacity"
	FieldSites    = "sites"
	FieldNodes    = "nodes"
	FieldChanged  = "changed_lines"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldMessagesFound   = "messages_found"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
