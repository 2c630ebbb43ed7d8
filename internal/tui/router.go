package tui

import (
	"strings"
	"sync"

	"github.com/idilsaglam/healthlog/internal/screen"
)

// router is the TUI's Navigator. GoTo may be called from command
// goroutines; the app applies the pending route on its next update.
type router struct {
	mu      sync.Mutex
	pending string
}

func (r *router) GoTo(path string) {
	r.mu.Lock()
	r.pending = path
	r.mu.Unlock()
}

func (r *router) take() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pending
	r.pending = ""
	return p
}

type routeKind int

const (
	routeUnknown routeKind = iota
	routeAppointments
	routeTreatments
	routeTreatmentForm
)

// parseRoute maps a path to a screen; for the form it also returns the
// treatment id ("" for a new one).
func parseRoute(path string) (routeKind, string) {
	switch path {
	case screen.PathAppointments:
		return routeAppointments, ""
	case screen.PathTreatments:
		return routeTreatments, ""
	case screen.PathNewTreatment:
		return routeTreatmentForm, ""
	}
	rest, ok := strings.CutPrefix(path, screen.PathTreatments+"/")
	if !ok {
		return routeUnknown, ""
	}
	id, ok := strings.CutSuffix(rest, "/edit")
	if !ok || id == "" || strings.Contains(id, "/") {
		return routeUnknown, ""
	}
	return routeTreatmentForm, id
}
