package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldQuery       = "query"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSource      = "source"
	FieldCacheKey    = "cache_key"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldRecordCount = "record_count"
	FieldDatasetPath = "dataset_path"
)

// Components defines standard component names.
const (
	ComponentApp   = "app"
	ComponentHTTP  = "http"
	ComponentStore = "store"
	ComponentWatch = "watch"
	ComponentSeed  = "seed"
)

// Operations defines standard operation names.
const (
	OpLoad     = "load"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields is a builder for structured log attributes.
type LogFields map[string]any

// NewFields creates an empty LogFields instance.
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds the component field.
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds the error field.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds the operation field.
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithLoad adds record-store load fields.
func (f LogFields) WithLoad(source, start, end string, count int) LogFields {
	f[FieldSource] = source
	f[FieldStartDate] = start
	f[FieldEndDate] = end
	f[FieldRecordCount] = count
	return f
}

// WithHTTPRequest adds HTTP request fields.
func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	f[FieldUserAgent] = userAgent
	return f
}

// WithHTTPResponse adds HTTP response fields.
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
	return f
}

// ToSlice converts LogFields to a slice for slog.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
