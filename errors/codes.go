package errors

// ErrorCode identifies a failure family in API responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006
	ErrorCode_VALIDATION_FAILED ErrorCode = 1007

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Minutes of meeting
	ErrorCode_MINUTES_NOT_FOUND      ErrorCode = 3000
	ErrorCode_MINUTES_ALREADY_EXISTS ErrorCode = 3001
	ErrorCode_MINUTES_INVALID        ErrorCode = 3002

	// Integrations
	ErrorCode_INTEGRATION_JIRA_FAILED         ErrorCode = 4000
	ErrorCode_INTEGRATION_EMAIL_FAILED        ErrorCode = 4001
	ErrorCode_INTEGRATION_CALENDAR_FAILED     ErrorCode = 4002
	ErrorCode_INTEGRATION_CALENDAR_DISABLED   ErrorCode = 4003
	ErrorCode_INTEGRATION_REMINDER_FAILED     ErrorCode = 4004
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 4005
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 4006
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 4007

	// AI
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 5000
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 5001
	ErrorCode_AI_INVALID_MODEL_OUTPUT ErrorCode = 5002

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 6000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 6001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_VALIDATION_FAILED:               "VALIDATION_FAILED",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_MINUTES_NOT_FOUND:               "MINUTES_NOT_FOUND",
	ErrorCode_MINUTES_ALREADY_EXISTS:          "MINUTES_ALREADY_EXISTS",
	ErrorCode_MINUTES_INVALID:                 "MINUTES_INVALID",
	ErrorCode_INTEGRATION_JIRA_FAILED:         "INTEGRATION_JIRA_FAILED",
	ErrorCode_INTEGRATION_EMAIL_FAILED:        "INTEGRATION_EMAIL_FAILED",
	ErrorCode_INTEGRATION_CALENDAR_FAILED:     "INTEGRATION_CALENDAR_FAILED",
	ErrorCode_INTEGRATION_CALENDAR_DISABLED:   "INTEGRATION_CALENDAR_DISABLED",
	ErrorCode_INTEGRATION_REMINDER_FAILED:     "INTEGRATION_REMINDER_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:               "AI_SUMMARY_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_INVALID_MODEL_OUTPUT:         "AI_INVALID_MODEL_OUTPUT",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
