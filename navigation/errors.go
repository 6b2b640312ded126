package navigation

import "errors"

// Sentinel errors for the navigation error taxonomy. Messages wrapping
// these always embed the offending identifier verbatim.
var (
	// ErrInvalidArgument reports a blank host name, a nil view or type,
	// or a type that is not displayable content.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrHostConflict reports a registration under a name that is already
	// taken. Duplicate registrations fail rather than silently replacing
	// the prior host.
	ErrHostConflict = errors.New("host already registered")

	// ErrHostNotFound reports navigation against an unregistered host
	// name.
	ErrHostNotFound = errors.New("host not found")
)
