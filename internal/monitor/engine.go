package monitor

import (
	"reflect"
	"slices"
	"sort"
	"time"

	"github.com/samber/lo"
)

// SortOrder flips the whole ordering, not individual keys.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// QuerySpec is the parsed form of a list request's parameters. It has no
// lifetime beyond the request that produced it.
type QuerySpec struct {
	Filter  map[string]any
	SortKey string
	Order   SortOrder
	Page    int
	Limit   int
}

// Page is one window of the filtered room list. Total counts rooms after
// filtering but before pagination; Connections sums clients across the
// returned window only, mirroring the upstream panel.
type Page struct {
	Rooms       []RoomSummary
	Total       int
	Connections int
}

// Pages reports how many pages the given limit yields.
func (p Page) Pages(limit int) int {
	if limit < 1 {
		return 0
	}
	return (p.Total + limit - 1) / limit
}

// Query filters, sorts and paginates a room snapshot. The static type filter
// always applies first, even when an ad-hoc filter is also present. The input
// slice is never mutated.
func Query(all []RoomSummary, spec QuerySpec, static FilterOptions) Page {
	rooms := lo.Filter(all, func(r RoomSummary, _ int) bool {
		return matchesTypes(r, static)
	})
	if len(spec.Filter) > 0 {
		rooms = lo.Filter(rooms, func(r RoomSummary, _ int) bool {
			return matchesFilter(r, spec.Filter)
		})
	}
	if spec.SortKey != "" {
		sortRooms(rooms, spec.SortKey, spec.Order)
	}

	total := len(rooms)
	page := max(spec.Page, 1)
	limit := max(spec.Limit, 1)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := min(start+limit, total)
	window := rooms[start:end]

	return Page{
		Rooms: window,
		Total: total,
		Connections: lo.SumBy(window, func(r RoomSummary) int {
			return r.Clients
		}),
	}
}

func matchesTypes(r RoomSummary, static FilterOptions) bool {
	if len(static.IncludeTypes) > 0 && !slices.Contains(static.IncludeTypes, r.Name) {
		return false
	}
	if slices.Contains(static.ExcludeTypes, r.Name) {
		return false
	}
	return true
}

// matchesFilter requires every key-value pair to match (logical AND). Keys
// resolve against the room's own fields first, then its metadata.
func matchesFilter(r RoomSummary, filter map[string]any) bool {
	for key, want := range filter {
		got, ok := r.Lookup(key)
		if !ok || !looseEqual(got, want) {
			return false
		}
	}
	return true
}

// looseEqual compares a room field against a JSON-decoded filter value, so
// integer fields match the float64 values JSON decoding produces.
func looseEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return reflect.DeepEqual(a, b)
}

// sortRooms orders ascending with a stable tie-break on original order, then
// reverses for descending, so the desc output is the exact mirror of asc.
func sortRooms(rooms []RoomSummary, key string, order SortOrder) {
	sort.SliceStable(rooms, func(i, j int) bool {
		a, _ := rooms[i].Lookup(key)
		b, _ := rooms[j].Lookup(key)
		return compareValues(a, b) < 0
	})
	if order == OrderDesc {
		slices.Reverse(rooms)
	}
}

// compareValues is a three-way comparison over the value kinds a room can
// carry. A missing value (nil) sorts below any defined value; values of
// different kinds order by kind so the result stays deterministic.
func compareValues(a, b any) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case rankBool:
		av, bv := a.(bool), b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case rankNumber:
		av, _ := toFloat(a)
		bv, _ := toFloat(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case rankString:
		av, bv := a.(string), b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	}
	return 0
}

const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankTime
	rankOther
)

func kindRank(v any) int {
	if v == nil {
		return rankNil
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	switch v.(type) {
	case bool:
		return rankBool
	case string:
		return rankString
	case time.Time:
		return rankTime
	}
	return rankOther
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
