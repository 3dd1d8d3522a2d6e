package logx

const (
	FieldAppName        = "app-name"
	FieldAppVersion     = "app-version"
	FieldCategory       = "category"
	FieldCSVPath        = "csv-path"
	FieldDealCount      = "deal-count"
	FieldDurationMs     = "duration-ms"
	FieldError          = "error"
	FieldFile           = "file"
	FieldFileCount      = "file-count"
	FieldHTTPRequest    = "http-request"
	FieldHTTPResponse   = "http-response"
	FieldJSONPath       = "json-path"
	FieldRecordCount    = "record-count"
	FieldRequestBody    = "request-body"
	FieldRequestID      = "request-id"
	FieldResponseBody   = "response-body"
	FieldResponseStatus = "response-status"
	FieldSchedule       = "schedule"
	FieldStack          = "stack"
	FieldTraceID        = "trace-id"
	FieldURL            = "url"
	FieldUserID         = "user-id"
)
