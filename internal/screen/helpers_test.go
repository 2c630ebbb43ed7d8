package screen

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/idilsaglam/healthlog/internal/model"
)

type toast struct {
	Kind    string
	Message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *recordingNotifier) Success(m string) { n.add("success", m) }
func (n *recordingNotifier) Error(m string)   { n.add("error", m) }

func (n *recordingNotifier) add(kind, m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{Kind: kind, Message: m})
}

func (n *recordingNotifier) all() []toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]toast(nil), n.toasts...)
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) GoTo(p string) { n.paths = append(n.paths, p) }

type MockAppointments struct {
	mock.Mock
}

func (m *MockAppointments) Index(ctx context.Context, q model.PageQuery) ([]model.AppointmentSummary, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.AppointmentSummary)
	return items, args.Error(1)
}

type MockTreatments struct {
	mock.Mock
}

func (m *MockTreatments) Show(ctx context.Context, id string) (model.TreatmentRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.TreatmentRecord), args.Error(1)
}

func (m *MockTreatments) Create(ctx context.Context, rec model.TreatmentRecord) (model.TreatmentRecord, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(model.TreatmentRecord), args.Error(1)
}

func (m *MockTreatments) Update(ctx context.Context, id string, rec model.TreatmentRecord) (model.TreatmentRecord, error) {
	args := m.Called(ctx, id, rec)
	return args.Get(0).(model.TreatmentRecord), args.Error(1)
}

type fieldErr struct {
	msgs []string
}

func (e *fieldErr) Error() string            { return "unprocessable" }
func (e *fieldErr) ServerMessages() []string { return e.msgs }

func appts(ids ...string) []model.AppointmentSummary {
	out := make([]model.AppointmentSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.AppointmentSummary{ID: id, Title: "t" + id})
	}
	return out
}
