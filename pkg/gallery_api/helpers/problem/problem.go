package problem

// APIError implements error and serializes to the wire shape the client
// expects: {"error": "...", "details": ...}. Status drives the HTTP code
// but stays out of the body. The underlying cause travels alongside the
// message so the development error hook can expose it as details.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e APIError) Error() string { return e.Message }

// Unwrap exposes the underlying cause, if any.
func (e APIError) Unwrap() error { return e.cause }

// NewBadRequest wraps a user-correctable validation failure.
func NewBadRequest(detail string) APIError {
	return APIError{
		Status:  400,
		Message: detail,
	}
}

// NewInternalServerError wraps any pipeline failure. The underlying message
// is surfaced verbatim; callers gate extra details on development mode.
func NewInternalServerError(detail string) APIError {
	return APIError{
		Status:  500,
		Message: detail,
	}
}

// WithDetails returns a copy carrying extra diagnostic payload.
func (e APIError) WithDetails(details any) APIError {
	e.Details = details
	return e
}

// WithCause returns a copy recording the underlying error.
func (e APIError) WithCause(err error) APIError {
	e.cause = err
	return e
}
