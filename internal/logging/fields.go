package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Formatting fields.
	FieldMode        = "mode"
	FieldMaxWidth    = "max_width"
	FieldIndentWidth = "indent_width"
	FieldJobs        = "jobs"
	FieldElapsed     = "elapsed"
	FieldChanged     = "changed"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesFormatted  = "files_formatted"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
