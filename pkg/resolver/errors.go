package resolver

import "errors"

// ErrNotResolved wraps the cause of a failed lookup. Callers should not
// branch on the cause; the nil record is the result.
var ErrNotResolved = errors.New("resolver: user information not resolved")
