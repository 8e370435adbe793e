package exitcode

const (
	Success        = 0
	UsageError     = 1
	ConfigError    = 2
	DBConnError    = 3
	ExtractError   = 4
	SubmitError    = 5
	PartialFailure = 6
)
