package monitor

import "strings"

const (
	roomActionPrefix   = "customAction:"
	clientActionPrefix = "customClientAction:"
)

// CallKind tags the three shapes a method token can decode to.
type CallKind int

const (
	CallBuiltin CallKind = iota
	CallRoomAction
	CallClientAction
)

// CallTarget is the decoded form of a method token. Tokens are parsed once at
// the router boundary; the dispatcher matches on Kind exhaustively and never
// sees the string encoding.
type CallTarget struct {
	Kind     CallKind
	Method   string // builtin registry method, CallBuiltin only
	ActionID string // custom action id, CallRoomAction/CallClientAction
	ClientID string // injected first argument, CallClientAction only
}

// ParseMethodToken decodes a token of one of three forms:
//
//	<method>                            bare registry method
//	customAction:<id>                   room-scoped custom action
//	customClientAction:<id>:<clientId>  client-scoped custom action
func ParseMethodToken(token string) (CallTarget, error) {
	switch {
	case strings.HasPrefix(token, clientActionPrefix):
		rest := strings.TrimPrefix(token, clientActionPrefix)
		id, clientID, ok := strings.Cut(rest, ":")
		if !ok || id == "" || clientID == "" {
			return CallTarget{}, &TokenError{Token: token}
		}
		return CallTarget{Kind: CallClientAction, ActionID: id, ClientID: clientID}, nil
	case strings.HasPrefix(token, roomActionPrefix):
		id := strings.TrimPrefix(token, roomActionPrefix)
		if id == "" {
			return CallTarget{}, &TokenError{Token: token}
		}
		return CallTarget{Kind: CallRoomAction, ActionID: id}, nil
	case token == "":
		return CallTarget{}, &TokenError{Token: token}
	default:
		return CallTarget{Kind: CallBuiltin, Method: token}, nil
	}
}
