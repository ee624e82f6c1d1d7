package logger

// Exported for white-box tests of the error layout.
var (
	CollectErrorEntriesExported = collectErrorEntries
	ErrorAttrsExported          = errorAttrs
)
