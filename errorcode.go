package staticvec

// ErrorCode reports the outcome of a fallible container operation. The set is
// closed: callers can switch over it exhaustively. Operations that cannot fail
// do not return a code.
type ErrorCode uint8

const (
	// NoError indicates that the operation succeeded.
	NoError ErrorCode = iota

	// OutOfSpace indicates that an insertion was attempted while the container
	// was already at capacity. The container is left unchanged.
	OutOfSpace

	// OutOfRange is reserved for bounds-checked operations. No operation
	// currently returns it.
	OutOfRange

	// Empty indicates that a removal was attempted on an empty container. The
	// container is left unchanged.
	Empty

	// CannotDefaultConstruct is reserved for default-construction paths. No
	// operation currently returns it.
	CannotDefaultConstruct
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "NoError"
	case OutOfSpace:
		return "OutOfSpace"
	case OutOfRange:
		return "OutOfRange"
	case Empty:
		return "Empty"
	case CannotDefaultConstruct:
		return "CannotDefaultConstruct"
	default:
		return "Unknown"
	}
}
