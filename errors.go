package doublebuf

import "errors"

// ErrDangling is returned by Reader.Read and Reader.Clone once the
// Writer that owns their shared cell has been Closed. It is a reported
// condition, not a panic: other readers holding a live reference are
// unaffected, and a ReadGuard obtained before the writer closed remains
// valid until Released.
var ErrDangling = errors.New("doublebuf: reader is dangling: writer has been closed")
