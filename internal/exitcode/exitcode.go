package exitcode

const (
	Success     = 0
	UsageError  = 1
	ConfigError = 2
	FetchError  = 3
	ColumnError = 4
	RenderError = 5
	ServeError  = 6
)
