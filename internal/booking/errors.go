package booking

import "errors"

const (
	MsgMissingFields     = "Missing required fields"
	MsgInvalidSeat       = "Seat numbers must be between 0 and 29"
	MsgNegativePrice     = "Total price must not be negative"
	MsgUserNotFound      = "User not found."
	MsgMovieNotFound     = "Movie not found."
	MsgReferenceNotFound = "User or movie no longer exists."
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "server"
	}
}

// Error is returned by Service operations. Message is safe to show to clients; Err holds the
// underlying failure for server errors.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func serverError(err error) error {
	return &Error{Kind: KindServer, Message: "Server error.", Err: err}
}

// KindOf reports the kind of err, treating unknown errors as server errors.
func KindOf(err error) Kind {
	var bErr *Error
	if errors.As(err, &bErr) {
		return bErr.Kind
	}

	return KindServer
}
