package engine

import "errors"

// ErrMissingWrite is returned when the caller context does not provide a
// write capability. The check runs before any file access, so a run that
// fails this way has performed no I/O.
var ErrMissingWrite = errors.New("context does not provide a write capability")
