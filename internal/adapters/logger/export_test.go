package logger

// Error chain helpers, exported for the logger_test package.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
