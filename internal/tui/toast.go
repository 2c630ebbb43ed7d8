package tui

import (
	"strings"
	"sync"
	"time"
)

const (
	toastTTL  = 4 * time.Second
	maxToasts = 4
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	kind toastKind
	text string
	at   time.Time
}

// toastQueue is the TUI's notifier. Controllers call it from command
// goroutines; the program drains it while rendering.
type toastQueue struct {
	mu    sync.Mutex
	items []toast
	now   func() time.Time
}

func newToastQueue() *toastQueue {
	return &toastQueue{now: time.Now}
}

func (q *toastQueue) Success(msg string) { q.push(toastSuccess, msg) }
func (q *toastQueue) Error(msg string)   { q.push(toastError, msg) }

func (q *toastQueue) push(kind toastKind, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, toast{kind: kind, text: msg, at: q.now()})
	if len(q.items) > maxToasts {
		q.items = q.items[len(q.items)-maxToasts:]
	}
}

// prune drops expired toasts and reports whether any are left.
func (q *toastQueue) prune() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Sub(t.at) < toastTTL {
			kept = append(kept, t)
		}
	}
	q.items = kept
	return len(q.items) > 0
}

func (q *toastQueue) snapshot() []toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]toast(nil), q.items...)
}

func (q *toastQueue) View() string {
	items := q.snapshot()
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, t := range items {
		if t.kind == toastError {
			lines = append(lines, errorStyle.Render("✖ "+t.text))
		} else {
			lines = append(lines, successStyle.Render("✔ "+t.text))
		}
	}
	return strings.Join(lines, "\n")
}
