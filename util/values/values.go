package values

// Response status strings returned in the ServerResponse body and mapped to
// HTTP status codes by util.StatusCode.
const (
	Success        = "success"
	Created        = "created"
	Error          = "error"
	Failed         = "failed"
	BadRequestBody = "bad-request-body"
	Unprocessable  = "unprocessable"
	NotAllowed     = "not-allowed"
	Conflict       = "conflict"
	NotFound       = "not-found"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
	ActiveLogin    = "active-login"
	SystemErr      = "system-error"
	Unavailable    = "unavailable"
)

// Request headers
const (
	HeaderRequestID     = "X-Request-Id"
	HeaderRequestSource = "X-Request-Source"
)

type ContextKey string

const ContextTracingKey = ContextKey("tracing-context")
