package screen

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/healthlog/internal/model"
)

// TreatmentService is the slice of the REST API the form needs.
type TreatmentService interface {
	Show(ctx context.Context, id string) (model.TreatmentRecord, error)
	Create(ctx context.Context, rec model.TreatmentRecord) (model.TreatmentRecord, error)
	Update(ctx context.Context, id string, rec model.TreatmentRecord) (model.TreatmentRecord, error)
}

// FormState is Editing -> Submitting -> {Editing, Closed}.
type FormState int

const (
	Editing FormState = iota
	Submitting
	Closed
)

func (s FormState) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Closed:
		return "closed"
	default:
		return "editing"
	}
}

// TreatmentForm owns one treatment's editable state.
type TreatmentForm struct {
	svc    TreatmentService
	notify Notifier
	nav    Navigator
	log    *zap.Logger

	mu       sync.Mutex
	recordID string
	record   model.TreatmentRecord
	touched  map[Field]bool
	result   ValidationResult
	state    FormState
	loadSeq  int
	disposed bool
}

func NewTreatmentForm(svc TreatmentService, notify Notifier, nav Navigator, log *zap.Logger) *TreatmentForm {
	if log == nil {
		log = zap.NewNop()
	}
	f := &TreatmentForm{
		svc:    svc,
		notify: notify,
		nav:    nav,
		log:    log,
	}
	f.reset(model.NewTreatmentRecord())
	return f
}

// reset must be called with mu held (or before the form is shared).
func (f *TreatmentForm) reset(rec model.TreatmentRecord) {
	f.record = rec
	f.touched = map[Field]bool{}
	f.result = Validate(rec)
	f.state = Editing
}

// Hydrate loads the record to edit, or the empty record when recordID is
// empty. A later call supersedes an earlier one still in flight.
func (f *TreatmentForm) Hydrate(ctx context.Context, recordID string) error {
	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return ErrDisposed
	}
	f.loadSeq++
	seq := f.loadSeq
	f.recordID = recordID
	if recordID == "" {
		f.reset(model.NewTreatmentRecord())
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	rec, err := f.svc.Show(ctx, recordID)

	f.mu.Lock()
	if f.disposed {
		f.mu.Unlock()
		return ErrDisposed
	}
	if seq != f.loadSeq {
		// superseded by a newer Hydrate
		f.mu.Unlock()
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		f.mu.Unlock()
		return ctxErr
	}
	if err != nil {
		f.reset(model.NewTreatmentRecord())
		f.mu.Unlock()
		f.log.Warn("screen.TreatmentForm.Hydrate failed",
			zap.String("treatment_id", recordID),
			zap.Error(err),
		)
		f.notify.Error(MsgTreatmentLoadFailed)
		return err
	}

	rec.Date = model.WireToField(rec.Date)
	if rec.ID == "" {
		rec.ID = recordID
	}
	if rec.Kind == "" {
		rec.Kind = model.KindMedicine
	}
	f.reset(rec)
	f.mu.Unlock()
	return nil
}

// SetField updates one field of the working record.
func (f *TreatmentForm) SetField(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldTitle:
		f.record.Title = value
	case FieldKind:
		k, err := model.ParseTreatmentKind(value)
		if err != nil {
			return err
		}
		f.record.Kind = k
	case FieldDescription:
		f.record.Description = value
	case FieldDate:
		f.record.Date = value
	case FieldTreatmentLocation:
		f.record.TreatmentLocation = value
	case FieldFiles:
		f.record.Files = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	f.result = Validate(f.record)
	return nil
}

// Touch marks a field as visited (blur) and revalidates.
func (f *TreatmentForm) Touch(field Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
	f.result = Validate(f.record)
}

// VisibleErrors returns validation messages for touched fields only.
func (f *TreatmentForm) VisibleErrors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[Field]string{}
	for field, msg := range f.result.Errors {
		if f.touched[field] {
			out[field] = msg
		}
	}
	return out
}

// Submit validates the working record and creates or updates it.
// Client-side failures return *ValidationError and send nothing.
func (f *TreatmentForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case f.disposed:
		f.mu.Unlock()
		return ErrDisposed
	case f.state == Submitting:
		f.mu.Unlock()
		return ErrSubmitInProgress
	case f.state == Closed:
		f.mu.Unlock()
		return ErrFormClosed
	}
	for _, field := range FormFields {
		f.touched[field] = true
	}
	f.result = Validate(f.record)
	if !f.result.Valid() {
		res := f.result
		f.mu.Unlock()
		return &ValidationError{Result: res}
	}
	f.state = Submitting
	rec := f.record
	id := f.recordID
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		if f.state == Submitting {
			f.state = Editing
		}
		f.mu.Unlock()
	}()

	// the date goes out as typed (YYYY-MM-DD)
	payload := rec

	var (
		err     error
		success string
	)
	if id != "" {
		_, err = f.svc.Update(ctx, id, payload)
		success = MsgTreatmentUpdated
	} else {
		_, err = f.svc.Create(ctx, payload)
		success = MsgTreatmentCreated
	}

	f.mu.Lock()
	dead := f.disposed
	f.mu.Unlock()
	if dead {
		return ErrDisposed
	}

	if err != nil {
		f.log.Warn("screen.TreatmentForm.Submit failed",
			zap.String("treatment_id", id),
			zap.Error(err),
		)
		if msgs := messagesOf(err); len(msgs) > 0 {
			for _, m := range msgs {
				f.notify.Error(m)
			}
		} else {
			f.notify.Error(MsgTreatmentSaveFailed)
		}
		return err
	}

	f.notify.Success(success)
	f.mu.Lock()
	f.state = Closed
	f.mu.Unlock()
	f.nav.GoTo(PathTreatments)
	return nil
}

// Dispose detaches the form from its screen; late results are dropped.
func (f *TreatmentForm) Dispose() {
	f.mu.Lock()
	f.disposed = true
	f.mu.Unlock()
}

// Record returns a copy of the working record (date in YYYY-MM-DD).
func (f *TreatmentForm) Record() model.TreatmentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record
}

func (f *TreatmentForm) RecordID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recordID
}

func (f *TreatmentForm) IsEdit() bool { return f.RecordID() != "" }

func (f *TreatmentForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *TreatmentForm) Submitting() bool { return f.State() == Submitting }
