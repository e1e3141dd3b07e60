package monitor

import "time"

// ActionScope says whether a custom action targets a whole room or one of its
// connected clients.
type ActionScope string

const (
	ScopeRoom   ActionScope = "room"
	ScopeClient ActionScope = "client"
)

// ActionDescriptor is an administrator-configured operation mapped to a method
// on the room process. Registered once at construction time, immutable after.
type ActionDescriptor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Icon            string `json:"icon,omitempty"`
	HandlerName     string `json:"-"`
	ConfirmRequired bool   `json:"confirmRequired"`
}

// ActionSet holds the registered room-scoped and client-scoped actions.
type ActionSet struct {
	Room   []ActionDescriptor
	Client []ActionDescriptor
}

func findAction(list []ActionDescriptor, id string) (ActionDescriptor, bool) {
	for _, a := range list {
		if a.ID == id {
			return a, true
		}
	}
	return ActionDescriptor{}, false
}

// FindRoom looks up a room-scoped action by id.
func (s ActionSet) FindRoom(id string) (ActionDescriptor, bool) {
	return findAction(s.Room, id)
}

// FindClient looks up a client-scoped action by id.
func (s ActionSet) FindClient(id string) (ActionDescriptor, bool) {
	return findAction(s.Client, id)
}

// AccessPolicy is the static permission set consulted on every request.
type AccessPolicy struct {
	AllowStateInspection   bool `json:"allowStateInspection"`
	AllowStateModification bool `json:"allowStateModification"`
	AllowClientMessages    bool `json:"allowClientMessages"`
	AllowRoomDisposal      bool `json:"allowRoomDisposal"`
}

// FilterOptions is the static type filter applied to every room listing
// before any per-request filter, sort, or pagination.
type FilterOptions struct {
	IncludeTypes []string
	ExcludeTypes []string
}

// UIOptions are passed through verbatim to the frontend; the gateway never
// interprets them.
type UIOptions struct {
	Theme       string         `json:"theme,omitempty"`
	Layout      string         `json:"layout,omitempty"`
	RoomList    map[string]any `json:"roomList,omitempty"`
	RoomInspect map[string]any `json:"roomInspect,omitempty"`
}

// AuthStrategy selects how panel requests are authenticated.
type AuthStrategy string

const (
	AuthNone AuthStrategy = "none"
	AuthJWT  AuthStrategy = "jwt"
)

// RateLimitOptions throttles panel requests per client address.
type RateLimitOptions struct {
	Enabled           bool
	RequestsPerMinute int
}

// CacheOptions caches the room-list response for a short window.
type CacheOptions struct {
	Enabled bool
	TTL     time.Duration
}

// Options is the full panel configuration, constructed once and passed by
// reference into the router, engine, guard and dispatcher.
type Options struct {
	Columns       []string
	UI            UIOptions
	RoomActions   []ActionDescriptor
	ClientActions []ActionDescriptor
	Access        AccessPolicy
	Filter        FilterOptions
	APIPrefix     string
	DefaultLimit  int
	RateLimit     RateLimitOptions
	EnableCORS    bool
	Cache         CacheOptions
	Auth          AuthStrategy
	FeedInterval  time.Duration
}

// DefaultOptions returns a permissive configuration suitable for development.
func DefaultOptions() Options {
	return Options{
		Columns: []string{"roomId", "name", "clients", "maxClients", "locked", "createdAt"},
		Access: AccessPolicy{
			AllowStateInspection:   true,
			AllowStateModification: true,
			AllowClientMessages:    true,
			AllowRoomDisposal:      true,
		},
		APIPrefix:    "/monitor",
		DefaultLimit: 25,
		Auth:         AuthNone,
		FeedInterval: 5 * time.Second,
	}
}

// Actions bundles the configured descriptors into an ActionSet.
func (o Options) Actions() ActionSet {
	return ActionSet{Room: o.RoomActions, Client: o.ClientActions}
}
