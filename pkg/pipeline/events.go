package pipeline

// EventType identifies a structural change of the pipeline
type EventType int

const (
	// EventAdded fires after a spec is appended at Index
	EventAdded EventType = iota
	// EventRemoved fires once per removed spec, with its former Index
	EventRemoved
	// EventMoved fires after a spec moved From one position To another
	EventMoved
	// EventToggled fires when the spec at Index is enabled or disabled
	EventToggled
	// EventRulesChanged fires when the whole list was replaced or cleared
	EventRulesChanged
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventMoved:
		return "moved"
	case EventToggled:
		return "toggled"
	case EventRulesChanged:
		return "rules_changed"
	default:
		return "unknown"
	}
}

// Event describes one change. Only the fields relevant to Type are set.
type Event struct {
	Type  EventType
	Index int
	From  int
	To    int
}

// Listener is notified synchronously after every change
type Listener func(Event)

// 📢 Subscribe registers l; the returned func removes it
func (p *Pipeline) Subscribe(l Listener) (unsubscribe func()) {
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	return func() { delete(p.listeners, id) }
}

func (p *Pipeline) notify(e Event) {
	for _, l := range p.listeners {
		l(e)
	}
}
