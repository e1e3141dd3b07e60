package monitor

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Caller is the registry's remote-call mechanism: a single request/response
// invocation of a method on one running room process.
type Caller interface {
	Call(ctx context.Context, roomID, method string, args []any) (any, error)
}

// Dispatcher routes decoded call targets to the registry, checking built-in
// methods against the access policy first. Custom actions are not guarded;
// their ConfirmRequired flag is advisory metadata for the frontend.
type Dispatcher struct {
	caller  Caller
	actions ActionSet
	policy  AccessPolicy
	log     *logrus.Logger
}

func NewDispatcher(caller Caller, actions ActionSet, policy AccessPolicy, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{caller: caller, actions: actions, policy: policy, log: log}
}

// Dispatch resolves the target and performs exactly one remote call. There
// are no retries: any registry failure (room gone, handler errored) surfaces
// as RoomUnavailableError to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, roomID string, target CallTarget, args []any) (any, error) {
	var method string

	switch target.Kind {
	case CallBuiltin:
		op := BuiltinOperation(target.Method)
		if !Authorize(op, d.policy) {
			d.log.WithFields(logrus.Fields{
				"roomId":    roomID,
				"method":    target.Method,
				"operation": op.String(),
			}).Warn("remote call denied by access policy")
			return nil, &PermissionError{Op: op}
		}
		method = target.Method
	case CallRoomAction:
		action, ok := d.actions.FindRoom(target.ActionID)
		if !ok {
			return nil, &ActionNotFoundError{Scope: ScopeRoom, ID: target.ActionID}
		}
		method = action.HandlerName
	case CallClientAction:
		action, ok := d.actions.FindClient(target.ActionID)
		if !ok {
			return nil, &ActionNotFoundError{Scope: ScopeClient, ID: target.ActionID}
		}
		method = action.HandlerName
		args = append([]any{target.ClientID}, args...)
	}

	result, err := d.caller.Call(ctx, roomID, method, args)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"roomId": roomID,
			"method": method,
		}).WithError(err).Warn("remote call failed")
		return nil, &RoomUnavailableError{RoomID: roomID, Err: err}
	}
	return result, nil
}
