package errcodes

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError  ErrorCode = "InternalServerError"
	ConfigError          ErrorCode = "ConfigError"
	ParseError           ErrorCode = "ParseError"
	LoadError            ErrorCode = "LoadError"
	AnalysisRequestError ErrorCode = "AnalysisRequestError"
	MaterializationError ErrorCode = "MaterializationError"
	NotificationError    ErrorCode = "NotificationError"
	RunInProgress        ErrorCode = "RunInProgress"
)
