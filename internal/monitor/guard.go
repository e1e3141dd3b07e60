package monitor

// Operation classifies what a request wants to do to a room, for access
// control purposes.
type Operation int

const (
	OpInspect Operation = iota
	OpModify
	OpDisconnect
	OpClientMessage
)

func (op Operation) String() string {
	switch op {
	case OpInspect:
		return "inspect"
	case OpModify:
		return "modify"
	case OpDisconnect:
		return "disconnect"
	case OpClientMessage:
		return "clientMessage"
	}
	return "unknown"
}

// Authorize checks one operation against the configured policy. Pure function
// over an immutable policy, safe for concurrent use.
func Authorize(op Operation, policy AccessPolicy) bool {
	switch op {
	case OpInspect:
		return policy.AllowStateInspection
	case OpModify:
		return policy.AllowStateModification
	case OpDisconnect:
		return policy.AllowRoomDisposal
	case OpClientMessage:
		return policy.AllowClientMessages
	}
	return false
}

// DenialMessage is the static message returned to the caller when the guard
// rejects an operation.
func DenialMessage(op Operation) string {
	switch op {
	case OpInspect:
		return "State inspection is not allowed"
	case OpModify:
		return "State modification is not allowed"
	case OpDisconnect:
		return "Room disposal is not allowed"
	case OpClientMessage:
		return "Client messaging is not allowed"
	}
	return "Operation is not allowed"
}

// BuiltinOperation maps a bare registry method name onto the operation class
// the guard checks. disconnect disposes the room; lock/unlock/setPrivate/
// setMetadata mutate room state; broadcast/sendToClient message clients. Any
// other bare method is treated as state-mutating.
func BuiltinOperation(method string) Operation {
	switch method {
	case "disconnect":
		return OpDisconnect
	case "lock", "unlock", "setPrivate", "setMetadata":
		return OpModify
	case "broadcast", "sendToClient":
		return OpClientMessage
	}
	return OpModify
}
