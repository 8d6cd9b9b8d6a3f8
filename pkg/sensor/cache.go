package sensor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/openlinky/linky_tic/pkg/tic"
)

// Event is one notification handed to subscribers: a decoded reading that
// changed, or an unchanged one re-emitted by the heartbeat.
type Event struct {
	Sensor  string      `json:"sensor"`
	Index   int         `json:"index"`
	Forced  bool        `json:"forced,omitempty"`
	Message tic.Message `json:"message"`
}

type slot struct {
	last    tic.Message
	seen    bool
	pending int
}

// entry is the per-sensor cache state. Entries are shared between the
// driver goroutine and HTTP readers, hence the per-entry lock.
type entry struct {
	meta  Meta
	cycle int

	mu    sync.Mutex
	slots []slot
}

// update applies one decoded reading and reports whether it must be
// emitted. cycle == 0 emits on change only; cycle > 0 additionally forces a
// re-emit after cycle unchanged updates, bounding the silence interval.
func (e *entry) update(idx int, msg tic.Message) (emit, forced bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &e.slots[idx]
	if !s.seen || !msg.Equal(s.last) {
		s.last = msg
		s.seen = true
		s.pending = 0
		return true, false
	}

	if e.cycle > 0 {
		s.pending++
		if s.pending >= e.cycle {
			s.pending = 0
			return true, true
		}
	}
	return false, false
}

// Cache owns every instantiated sensor entry for the process lifetime. It
// is built once from configuration and passed explicitly to the read loop;
// there is no package-level state.
type Cache struct {
	cycle   int
	entries map[string]*entry
}

// NewCache instantiates the sensors named in enabled. Values are slot
// counts: 0 (or absence) disables the sensor, larger values are capped at
// the catalog slot count. cycle is the heartbeat interval in updates,
// 0 disables the heartbeat.
func NewCache(enabled map[string]int, cycle int) (*Cache, error) {
	if cycle < 0 {
		return nil, fmt.Errorf("sensor: cycle must be non-negative, got %d", cycle)
	}

	cache := &Cache{cycle: cycle, entries: make(map[string]*entry)}
	for uid, slots := range enabled {
		meta, ok := Catalog[uid]
		if !ok {
			return nil, fmt.Errorf("sensor: unknown sensor %q", uid)
		}
		if slots <= 0 {
			continue
		}
		if slots > meta.Slots {
			slots = meta.Slots
		}
		cache.entries[uid] = &entry{
			meta:  meta,
			cycle: cycle,
			slots: make([]slot, slots),
		}
	}
	return cache, nil
}

// Update routes one decoded message to its sensor slot and reports whether
// subscribers must be notified. Messages for disabled sensors, uninstantiated
// phases or unrouted labels are suppressed.
func (c *Cache) Update(msg tic.Message) (Event, bool) {
	target, ok := Route(msg.Label)
	if !ok {
		return Event{}, false
	}
	e, ok := c.entries[target.Sensor]
	if !ok || target.Index >= len(e.slots) {
		return Event{}, false
	}

	emit, forced := e.update(target.Index, msg)
	if !emit {
		return Event{}, false
	}
	return Event{
		Sensor:  target.Sensor,
		Index:   target.Index,
		Forced:  forced,
		Message: msg,
	}, true
}

// Snapshot is the last known state of one sensor for the read API. Slots
// never updated so far are nil.
type Snapshot struct {
	Sensor string         `json:"sensor"`
	Unit   Unit           `json:"unit"`
	Values []*tic.Message `json:"values"`
}

// Latest returns a point-in-time copy of every instantiated sensor, sorted
// by sensor UID.
func (c *Cache) Latest() []Snapshot {
	out := make([]Snapshot, 0, len(c.entries))
	for uid, e := range c.entries {
		snap := Snapshot{
			Sensor: uid,
			Unit:   e.meta.Unit,
			Values: make([]*tic.Message, len(e.slots)),
		}
		e.mu.Lock()
		for i := range e.slots {
			if e.slots[i].seen {
				msg := e.slots[i].last
				snap.Values[i] = &msg
			}
		}
		e.mu.Unlock()
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sensor < out[j].Sensor })
	return out
}

// Enabled returns the metadata of every instantiated sensor, sorted by UID.
func (c *Cache) Enabled() []Meta {
	out := make([]Meta, 0, len(c.entries))
	for _, e := range c.entries {
		meta := e.meta
		meta.Slots = len(e.slots)
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}
