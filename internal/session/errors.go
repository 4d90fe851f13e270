package session

// modelNotFoundError indicates a requested model id is not present in the
// scanned directory.
type modelNotFoundError struct{ id string }

func (e modelNotFoundError) Error() string { return "model not found: " + e.id }

func ErrModelNotFound(id string) error { return modelNotFoundError{id: id} }

// IsModelNotFound reports whether the error indicates a missing model id.
func IsModelNotFound(err error) bool {
	_, ok := err.(modelNotFoundError)
	return ok
}

// loadFailedError wraps a runtime allocation failure during Load. The
// attempted session is discarded; the caller may retry.
type loadFailedError struct {
	id  string
	err error
}

func (e loadFailedError) Error() string { return "load " + e.id + ": " + e.err.Error() }
func (e loadFailedError) Unwrap() error { return e.err }

func ErrLoadFailed(id string, err error) error { return loadFailedError{id: id, err: err} }

// IsLoadFailed reports whether err came from a failed model load.
func IsLoadFailed(err error) bool {
	_, ok := err.(loadFailedError)
	return ok
}

// notResidentError signals a prompt submission with no model loaded.
type notResidentError struct{}

func (notResidentError) Error() string { return "no model resident" }

func ErrNotResident() error { return notResidentError{} }

// IsNotResident reports whether err indicates no resident model.
func IsNotResident(err error) bool {
	_, ok := err.(notResidentError)
	return ok
}

// tooBusyError signals a second submission while a generation is in flight
// and the wait timed out.
type tooBusyError struct{ id string }

func (e tooBusyError) Error() string { return "too busy: " + e.id }

func ErrTooBusy(id string) error { return tooBusyError{id: id} }

// IsTooBusy reports whether err indicates backpressure.
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// formatError indicates the chat template could not be applied to the turn
// log. Per-turn: the session stays ready.
type formatError struct{ msg string }

func (e formatError) Error() string { return "format prompt: " + e.msg }

func ErrFormat(msg string) error { return formatError{msg: msg} }

// IsFormat reports whether err is a prompt formatting failure.
func IsFormat(err error) bool {
	_, ok := err.(formatError)
	return ok
}

// tokenizeError indicates the isolated prompt could not be tokenized.
// Per-turn: the session stays ready.
type tokenizeError struct{ err error }

func (e tokenizeError) Error() string { return "tokenize prompt: " + e.err.Error() }
func (e tokenizeError) Unwrap() error { return e.err }

func ErrTokenize(err error) error { return tokenizeError{err: err} }

// IsTokenize reports whether err is a tokenization failure.
func IsTokenize(err error) bool {
	_, ok := err.(tokenizeError)
	return ok
}

// decodeError indicates the runtime failed mid-generation. The generation
// stops; fragments already emitted are preserved and the session stays ready.
type decodeError struct{ err error }

func (e decodeError) Error() string { return "decode: " + e.err.Error() }
func (e decodeError) Unwrap() error { return e.err }

func ErrDecode(err error) error { return decodeError{err: err} }

// IsDecode reports whether err is a mid-generation runtime failure.
func IsDecode(err error) bool {
	_, ok := err.(decodeError)
	return ok
}
