package movement

import "sync"

type EventKind uint8

const (
	EventStateChanged EventKind = iota + 1
	EventJumped
	EventLanded
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventJumped:
		return "jumped"
	case EventLanded:
		return "landed"
	default:
		return "unknown"
	}
}

// Event describes something that happened during a tick. Events are delivered
// after the tick has committed.
type Event struct {
	Kind           EventKind
	Tick           uint64
	From           StateName
	To             StateName
	JumpsRemaining int
	// Air is set on EventJumped when the jump started without ground or
	// coyote support.
	Air bool
}

type Listener func(Event)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Subscription keeps a listener registered until Close is called.
type Subscription struct {
	ctl  *Controller
	id   uint64
	once sync.Once
}

// Subscribe registers l for controller events. Listeners run in registration
// order on the goroutine that steps the controller.
func (c *Controller) Subscribe(l Listener) *Subscription {
	if c == nil || l == nil {
		return &Subscription{}
	}
	c.nextListenerID++
	id := c.nextListenerID
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: l})
	return &Subscription{ctl: c, id: id}
}

// Close deregisters the listener. Safe to call more than once.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.ctl != nil {
			s.ctl.unsubscribe(s.id)
		}
	})
}

func (c *Controller) unsubscribe(id uint64) {
	out := c.listeners[:0:0]
	for _, entry := range c.listeners {
		if entry.id != id {
			out = append(out, entry)
		}
	}
	c.listeners = out
}

func (c *Controller) emit(evt Event) {
	evt.Tick = c.ticks
	c.pending = append(c.pending, evt)
}

func (c *Controller) dispatch() {
	if len(c.pending) == 0 {
		return
	}
	events := c.pending
	c.pending = nil
	listeners := c.listeners
	for _, evt := range events {
		for _, entry := range listeners {
			entry.fn(evt)
		}
	}
}
