// Package screen holds the UI-independent controllers behind the
// appointment and treatment screens: paginated list fetching and the
// treatment create/edit form.
package screen

import "errors"

// Notifier surfaces toasts to the user. Calls are fire-and-forget.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator moves the user to another screen.
type Navigator interface {
	GoTo(path string)
}

const (
	PathAppointments = "/appointment"
	PathTreatments   = "/treatment"
	PathNewTreatment = "/treatment/new"
)

// EditTreatmentPath is the form route for an existing treatment.
func EditTreatmentPath(id string) string { return PathTreatments + "/" + id + "/edit" }

// User-facing messages.
const (
	MsgAppointmentsLoadFailed = "Failed to load appointments"
	MsgTreatmentsLoadFailed   = "Failed to load treatments"
	MsgTreatmentLoadFailed    = "Failed to load treatment"
	MsgTreatmentCreated       = "Treatment added successfully!"
	MsgTreatmentUpdated       = "Treatment updated successfully!"
	MsgTreatmentSaveFailed    = "Failed to save treatment"
)

var (
	ErrFetchInProgress  = errors.New("screen: fetch already in progress")
	ErrNoMorePages      = errors.New("screen: no more pages")
	ErrSubmitInProgress = errors.New("screen: submit already in progress")
	ErrFormClosed       = errors.New("screen: form already submitted")
	ErrDisposed         = errors.New("screen: disposed")
)

// serverMessages is implemented by remote errors that carry one
// user-facing message per rejected field.
type serverMessages interface {
	error
	ServerMessages() []string
}

func messagesOf(err error) []string {
	var sm serverMessages
	if errors.As(err, &sm) {
		return sm.ServerMessages()
	}
	return nil
}
