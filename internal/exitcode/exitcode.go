package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	TransportError  = 3
	ParseError      = 4
	RenderError     = 5
	DBConnError     = 6
	PartialSuccess  = 7
)
