// Package store is the persistent key-value mirror shared by every window
// of the application. A write by one window is observable by the others
// through Subscribe; the writer itself is never notified.
package store

import "sync"

// Key names one persisted record
type Key string

const (
	KeyTimerState Key = "timerState"
	KeyMediaState Key = "mediaState"
	KeySettings   Key = "settings"
	KeyStats      Key = "stats"
	KeyTasks      Key = "tasks"
	KeyPresets    Key = "presets"
)

// Keys lists every record the application persists
var Keys = []Key{KeyTimerState, KeyMediaState, KeySettings, KeyStats, KeyTasks, KeyPresets}

// DefaultNamespace prefixes every stored key
const DefaultNamespace = "tomodoro"

// Change is a write made by another store instance
type Change struct {
	Key   Key
	Value []byte
}

// Store is a string-keyed persistent map with cross-instance change
// notifications.
type Store interface {
	// Get returns the stored value, or nil when the key was never written
	Get(key Key) ([]byte, error)
	// Put stores value and notifies every other instance
	Put(key Key, value []byte) error
	// Subscribe returns a channel of changes made by other instances.
	// Delivery never blocks the writer; a full channel is coalesced to the
	// latest value of each key.
	Subscribe(buffer int) <-chan Change
	Close() error
}

// observers fans changes out to subscriber channels
type observers struct {
	mu     sync.Mutex
	subs   []chan Change
	closed bool
}

func (o *observers) subscribe(buffer int) <-chan Change {
	o.mu.Lock()
	defer o.mu.Unlock()
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)
	if o.closed {
		close(ch)
		return ch
	}
	o.subs = append(o.subs, ch)
	return ch
}

// emit delivers change to every subscriber without blocking. A full
// subscriber has its backlog coalesced to the latest value per key, so a
// slow reader loses intermediate values but never the final one. Reports
// how many queued changes were superseded.
func (o *observers) emit(change Change) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0
	}
	superseded := 0
	for _, ch := range o.subs {
		select {
		case ch <- change:
		default:
			superseded += coalesce(ch, change)
		}
	}
	return superseded
}

// coalesce drains ch, keeps the newest value of each key in first-seen
// order, appends change and refills ch. Only the owning observers send on
// ch, so the refill cannot block. When more keys are pending than ch can
// hold, the oldest keys go.
func coalesce(ch chan Change, change Change) int {
	var order []Key
	latest := make(map[Key][]byte)
	queued := 0
	take := func(c Change) {
		if _, ok := latest[c.Key]; !ok {
			order = append(order, c.Key)
		}
		latest[c.Key] = c.Value
	}
drain:
	for {
		select {
		case c := <-ch:
			queued++
			take(c)
		default:
			break drain
		}
	}
	take(change)

	if over := len(order) - cap(ch); over > 0 {
		for _, key := range order[:over] {
			delete(latest, key)
		}
		order = order[over:]
	}
	for _, key := range order {
		ch <- Change{Key: key, Value: latest[key]}
	}
	return queued + 1 - len(order)
}

func (o *observers) close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for _, ch := range o.subs {
		close(ch)
	}
	o.subs = nil
}
