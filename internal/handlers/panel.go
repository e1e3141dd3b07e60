package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/arenalab/rooms-admin/internal/metrics"
	"github.com/arenalab/rooms-admin/internal/monitor"
	"github.com/arenalab/rooms-admin/internal/registry"
)

const listCachePrefix = "monitor:cache:list:"

// Panel serves the admin endpoints over one registry. It holds no mutable
// request state; room snapshots are per-request copies.
type Panel struct {
	opts       monitor.Options
	reg        registry.Registry
	dispatcher *monitor.Dispatcher
	cache      *redis.Client
	log        *logrus.Logger
}

// NewPanel wires the dispatcher from the configured actions and policy. The
// cache client may be nil; caching also requires the config toggle.
func NewPanel(opts monitor.Options, reg registry.Registry, cache *redis.Client, log *logrus.Logger) *Panel {
	return &Panel{
		opts:       opts,
		reg:        reg,
		dispatcher: monitor.NewDispatcher(reg, opts.Actions(), opts.Access, log),
		cache:      cache,
		log:        log,
	}
}

// parseQuerySpec marshals request parameters into a QuerySpec. A malformed
// filter parameter is not fatal: it is logged and dropped.
func (p *Panel) parseQuerySpec(c *gin.Context) monitor.QuerySpec {
	spec := monitor.QuerySpec{
		SortKey: c.Query("sort"),
		Order:   monitor.OrderAsc,
		Page:    1,
		Limit:   p.opts.DefaultLimit,
	}
	if c.Query("order") == string(monitor.OrderDesc) {
		spec.Order = monitor.OrderDesc
	}
	if page, err := atoiQuery(c, "page"); err == nil && page >= 1 {
		spec.Page = page
	}
	if limit, err := atoiQuery(c, "limit"); err == nil && limit >= 1 {
		spec.Limit = limit
	}
	if raw := c.Query("filter"); raw != "" {
		var filter map[string]any
		if err := json.Unmarshal([]byte(raw), &filter); err != nil {
			p.log.WithError(err).WithField("filter", raw).Warn("ignoring malformed filter parameter")
		} else {
			spec.Filter = filter
		}
	}
	return spec
}

// ListRooms handles GET /: the filtered, sorted, paginated room list plus the
// dashboard envelope (columns, actions, access policy, host usage).
func (p *Panel) ListRooms(c *gin.Context) {
	spec := p.parseQuerySpec(c)

	cacheKey := listCachePrefix + c.Request.URL.RawQuery
	if p.cacheEnabled() {
		if cached, err := p.cache.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	rooms, err := p.reg.Rooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	result := monitor.Query(rooms, spec, p.opts.Filter)
	cpuPct, memPct := metrics.Usage()

	resp := gin.H{
		"columns": p.opts.Columns,
		"rooms":   nonNilRooms(result.Rooms),
		"pagination": gin.H{
			"total": result.Total,
			"page":  spec.Page,
			"limit": spec.Limit,
			"pages": result.Pages(spec.Limit),
		},
		"connections": result.Connections,
		"cpu":         cpuPct,
		"memory":      memPct,
		"actions":     nonNilActions(p.opts.RoomActions),
		"access":      p.opts.Access,
	}

	if p.cacheEnabled() {
		if payload, err := json.Marshal(resp); err == nil {
			p.cache.Set(c.Request.Context(), cacheKey, payload, p.opts.Cache.TTL)
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// InspectRoom handles GET /room: the registry's inspect payload plus the
// registered action descriptors.
func (p *Panel) InspectRoom(c *gin.Context) {
	if !monitor.Authorize(monitor.OpInspect, p.opts.Access) {
		writeError(c, &monitor.PermissionError{Op: monitor.OpInspect})
		return
	}

	roomID := c.Query("roomId")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "roomId is required"})
		return
	}

	payload, err := p.reg.Inspect(c.Request.Context(), roomID)
	if err != nil {
		writeError(c, &monitor.RoomUnavailableError{RoomID: roomID, Err: err})
		return
	}

	resp := make(gin.H, len(payload)+2)
	for k, v := range payload {
		resp[k] = v
	}
	resp["actions"] = nonNilActions(p.opts.RoomActions)
	resp["clientActions"] = nonNilActions(p.opts.ClientActions)
	c.JSON(http.StatusOK, resp)
}

// CallRoom handles GET /room/call: decode the method token, dispatch, return
// the remote result verbatim.
func (p *Panel) CallRoom(c *gin.Context) {
	roomID := c.Query("roomId")
	method := c.Query("method")
	if roomID == "" || method == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "roomId and method are required"})
		return
	}

	var args []any
	if raw := c.Query("args"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "args must be a JSON array"})
			return
		}
	}

	target, err := monitor.ParseMethodToken(method)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
		return
	}

	result, err := p.dispatcher.Dispatch(c.Request.Context(), roomID, target, args)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "result": result})
}

func (p *Panel) cacheEnabled() bool {
	return p.cache != nil && p.opts.Cache.Enabled
}

func atoiQuery(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}

func nonNilRooms(rooms []monitor.RoomSummary) []monitor.RoomSummary {
	if rooms == nil {
		return []monitor.RoomSummary{}
	}
	return rooms
}

func nonNilActions(actions []monitor.ActionDescriptor) []monitor.ActionDescriptor {
	if actions == nil {
		return []monitor.ActionDescriptor{}
	}
	return actions
}
