package monitor

import (
	"strings"
	"time"
)

// RoomSummary is a point-in-time snapshot of one live room as reported by the
// registry. It is copied per request; mutating it has no effect on the room.
type RoomSummary struct {
	RoomID     string         `json:"roomId"`
	Name       string         `json:"name"` // room type name
	Clients    int            `json:"clients"`
	MaxClients int            `json:"maxClients"`
	Locked     bool           `json:"locked"`
	Private    bool           `json:"private"`
	CreatedAt  time.Time      `json:"createdAt"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Field resolves a top-level field by its JSON name. Unknown names fall back
// to the metadata mapping.
func (r RoomSummary) Field(name string) (any, bool) {
	switch name {
	case "roomId":
		return r.RoomID, true
	case "name":
		return r.Name, true
	case "clients":
		return r.Clients, true
	case "maxClients":
		return r.MaxClients, true
	case "locked":
		return r.Locked, true
	case "private":
		return r.Private, true
	case "createdAt":
		return r.CreatedAt, true
	case "metadata":
		if r.Metadata == nil {
			return nil, false
		}
		return r.Metadata, true
	}
	v, ok := r.Metadata[name]
	return v, ok
}

// Lookup resolves a dotted path such as "metadata.region" against the room.
// The first segment goes through Field; deeper segments traverse nested
// mappings. A missing segment anywhere yields (nil, false).
func (r RoomSummary) Lookup(path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur, ok := r.Field(parts[0])
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		m, isMap := cur.(map[string]any)
		if !isMap {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
