package assistant

// ValidationError marks a request the caller can fix: missing message,
// non-positive measurements, and similar. Never retried.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// GenerationError wraps a failed call to the upstream model. The triggering
// turn is never recorded in history when one of these surfaces.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "model generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
