package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/arenalab/rooms-admin/internal/monitor"
)

// CallHandler implements one remotely invocable method on a local room.
type CallHandler func(args []any) (any, error)

type localRoom struct {
	summary  monitor.RoomSummary
	state    map[string]any
	handlers map[string]CallHandler
}

// LocalRegistry is an in-process room store used by the example app and
// tests. Rooms are registered with their summaries and optional per-method
// call handlers.
type LocalRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*localRoom
}

func NewLocal() *LocalRegistry {
	return &LocalRegistry{rooms: make(map[string]*localRoom)}
}

// Add registers a room, replacing any existing room with the same id.
func (l *LocalRegistry) Add(summary monitor.RoomSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rooms[summary.RoomID] = &localRoom{
		summary:  summary,
		state:    map[string]any{},
		handlers: make(map[string]CallHandler),
	}
}

// Remove drops a room; pending requests against it will fail.
func (l *LocalRegistry) Remove(roomID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.rooms, roomID)
}

// SetState replaces the state payload returned by Inspect.
func (l *LocalRegistry) SetState(roomID string, state map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if room, ok := l.rooms[roomID]; ok {
		room.state = state
	}
}

// Handle registers a callable method on a room. Handlers take precedence
// over the built-in disconnect and inspect behaviors.
func (l *LocalRegistry) Handle(roomID, method string, h CallHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if room, ok := l.rooms[roomID]; ok {
		room.handlers[method] = h
	}
}

func (l *LocalRegistry) Rooms(ctx context.Context) ([]monitor.RoomSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rooms := make([]monitor.RoomSummary, 0, len(l.rooms))
	for _, room := range l.rooms {
		rooms = append(rooms, room.summary)
	}
	// Deterministic listing order; callers sort further per request.
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].RoomID < rooms[j].RoomID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	return rooms, nil
}

func (l *LocalRegistry) Inspect(ctx context.Context, roomID string) (map[string]any, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	room, ok := l.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("inspect room %s: %w", roomID, ErrRoomNotFound)
	}
	return l.inspectLocked(room), nil
}

func (l *LocalRegistry) inspectLocked(room *localRoom) map[string]any {
	s := room.summary
	return map[string]any{
		"roomId":     s.RoomID,
		"name":       s.Name,
		"clients":    s.Clients,
		"maxClients": s.MaxClients,
		"locked":     s.Locked,
		"private":    s.Private,
		"createdAt":  s.CreatedAt,
		"metadata":   s.Metadata,
		"state":      room.state,
	}
}

func (l *LocalRegistry) Call(ctx context.Context, roomID, method string, args []any) (any, error) {
	l.mu.Lock()
	room, ok := l.rooms[roomID]
	if !ok {
		l.mu.Unlock()
		return nil, fmt.Errorf("call %s on room %s: %w", method, roomID, ErrRoomNotFound)
	}
	if h, ok := room.handlers[method]; ok {
		l.mu.Unlock()
		return h(args)
	}

	switch method {
	case "getInspectData":
		defer l.mu.Unlock()
		return l.inspectLocked(room), nil
	case "disconnect":
		delete(l.rooms, roomID)
		l.mu.Unlock()
		return true, nil
	case "lock":
		room.summary.Locked = true
		l.mu.Unlock()
		return true, nil
	case "unlock":
		room.summary.Locked = false
		l.mu.Unlock()
		return true, nil
	}
	l.mu.Unlock()
	return nil, fmt.Errorf("room %s has no method %s", roomID, method)
}
