package util

var (
	NotFoundError   = NewError("not found")
	DuplicatedError = NewError("duplicated error")
	WrongTypeError  = NewError("wrong type")
	// ProtocolViolationError is raised when a peer asks for something the
	// governance rules never allow, like retracting an append-only item.
	ProtocolViolationError = NewError("protocol violation")
)
