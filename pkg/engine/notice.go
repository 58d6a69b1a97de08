package engine

import (
	"fmt"
)

// NoticeKey is the stable message key of a notice
type NoticeKey string

const (
	NoticeInvalidRule     NoticeKey = "invalid_rule"
	NoticeRenameFailed    NoticeKey = "rename_failed"
	NoticeRollbackFailed  NoticeKey = "rollback_failed"
	NoticeRolledBack      NoticeKey = "rolled_back"
	NoticeUndoFailed      NoticeKey = "undo_failed"
	NoticeUndoUnavailable NoticeKey = "undo_unavailable"
	NoticeDuplicateNames  NoticeKey = "duplicate_names"
	NoticeInvalidName     NoticeKey = "invalid_name"
	NoticeIndexOutOfRange NoticeKey = "index_out_of_range"
	NoticeEngineBusy      NoticeKey = "engine_busy"
	NoticeListingFailed   NoticeKey = "listing_failed"
)

// 📣 Notice is how the engine reports problems. Path and Fields are set
// when the notice is about a file or about rule params.
type Notice struct {
	Key    NoticeKey
	Path   string
	Fields []string
	Err    error
}

func (n Notice) String() string {
	s := string(n.Key)
	if n.Path != "" {
		s += " " + n.Path
	}
	if len(n.Fields) > 0 {
		s += fmt.Sprintf(" %v", n.Fields)
	}
	if n.Err != nil {
		s += ": " + n.Err.Error()
	}
	return s
}

// NoticeListener receives every notice synchronously
type NoticeListener func(Notice)

// 📢 Subscribe registers l; the returned func removes it
func (e *Engine) Subscribe(l NoticeListener) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.listeners[id] = l
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

func (e *Engine) publish(n Notice) {
	e.mu.Lock()
	listeners := make([]NoticeListener, 0, len(e.listeners))
	for _, l := range e.listeners {
		listeners = append(listeners, l)
	}
	e.mu.Unlock()

	for _, l := range listeners {
		l(n)
	}
}
