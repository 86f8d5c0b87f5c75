package foxess

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication covers HTTP 401/403 and vendor errno responses that
	// point at the API key. Not retryable.
	ErrAuthentication = errors.New("foxess: authentication failed")
	// ErrCommunication covers transport failures and timeouts.
	ErrCommunication = errors.New("foxess: communication error")
)

// APIError is a vendor response with a non-zero errno that is not an
// authentication failure.
type APIError struct {
	Errno int
	Msg   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("foxess: api error %d: %s", e.Errno, e.Msg)
}
