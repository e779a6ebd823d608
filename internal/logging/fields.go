package logging

// Field name constants for structured logging.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldReport   = "report"
	FieldReports  = "reports"
	FieldFiles    = "files"
	FieldLanguage = "language"
	FieldConfig   = "config"

	// Run settings.
	FieldMode   = "mode"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Edit fields.
	FieldEdit     = "edit"
	FieldRange    = "range"
	FieldKept     = "kept"
	FieldFixable  = "fixable"
	FieldFixed    = "fixed"
	FieldSkipped  = "skipped"
	FieldDuration = "duration"
	FieldReason   = "reason"

	// Totals.
	FieldFilesProcessed   = "files_processed"
	FieldFilesModified    = "files_modified"
	FieldFilesErrored     = "files_errored"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
