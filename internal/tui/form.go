package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/healthlog/internal/model"
	"github.com/idilsaglam/healthlog/internal/screen"
)

type hydratedMsg struct{ err error }
type submittedMsg struct{ err error }

// focus slots, in tab order
const (
	slotTitle = iota
	slotKind
	slotDescription
	slotDate
	slotLocation
	slotFiles
	slotSubmit
	slotCount
)

var slotFields = [...]screen.Field{
	slotTitle:       screen.FieldTitle,
	slotKind:        screen.FieldKind,
	slotDescription: screen.FieldDescription,
	slotDate:        screen.FieldDate,
	slotLocation:    screen.FieldTreatmentLocation,
	slotFiles:       screen.FieldFiles,
}

var slotLabels = [...]string{
	slotTitle:       "TREATMENT TITLE",
	slotKind:        "TREATMENT KIND",
	slotDescription: "DESCRIPTION",
	slotDate:        "DATE (YYYY-MM-DD)",
	slotLocation:    "TREATMENT LOCATION",
	slotFiles:       "FILES",
}

type formView struct {
	ctx      context.Context
	form     *screen.TreatmentForm
	nav      screen.Navigator
	log      *zap.Logger
	recordID string

	inputs  map[int]*textinput.Model
	desc    textarea.Model
	kindIdx int
	focus   int
	loading bool
}

func newTextInput(placeholder string, limit int) *textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return &ti
}

func newFormView(ctx context.Context, deps Deps, toasts screen.Notifier, nav screen.Navigator, recordID string) view {
	desc := textarea.New()
	desc.Placeholder = "Notes about the treatment..."
	desc.ShowLineNumbers = false
	desc.SetHeight(3)

	return &formView{
		ctx:      ctx,
		form:     screen.NewTreatmentForm(deps.TreatmentAPI, toasts, nav, deps.Log),
		nav:      nav,
		log:      deps.Log,
		recordID: recordID,
		inputs: map[int]*textinput.Model{
			slotTitle:    newTextInput("Enter the treatment title", 200),
			slotDate:     newTextInput("YYYY-MM-DD", 10),
			slotLocation: newTextInput("Enter the treatment location", 200),
			slotFiles:    newTextInput("Attachment reference", 500),
		},
		desc:    desc,
		loading: recordID != "",
	}
}

func (v *formView) Init() tea.Cmd {
	ctx, f, id := v.ctx, v.form, v.recordID
	return tea.Batch(
		func() tea.Msg { return hydratedMsg{err: f.Hydrate(ctx, id)} },
		v.setFocus(slotTitle),
	)
}

// load copies the working record into the widgets.
func (v *formView) load(rec model.TreatmentRecord) {
	v.inputs[slotTitle].SetValue(rec.Title)
	v.inputs[slotDate].SetValue(rec.Date)
	v.inputs[slotLocation].SetValue(rec.TreatmentLocation)
	v.inputs[slotFiles].SetValue(rec.Files)
	v.desc.SetValue(rec.Description)
	v.kindIdx = 0
	for i, k := range model.TreatmentKinds {
		if k == rec.Kind {
			v.kindIdx = i
		}
	}
}

func (v *formView) setFocus(slot int) tea.Cmd {
	for _, ti := range v.inputs {
		ti.Blur()
	}
	v.desc.Blur()
	v.focus = slot
	if ti, ok := v.inputs[slot]; ok {
		return ti.Focus()
	}
	if slot == slotDescription {
		return v.desc.Focus()
	}
	return nil
}

// move blurs the current field (touching it) and focuses the next one.
func (v *formView) move(delta int) tea.Cmd {
	if v.focus < slotSubmit {
		v.form.Touch(slotFields[v.focus])
	}
	next := (v.focus + delta + slotCount) % slotCount
	return v.setFocus(next)
}

func (v *formView) submit() tea.Cmd {
	if v.form.Submitting() || v.loading {
		return nil
	}
	ctx, f := v.ctx, v.form
	return func() tea.Msg { return submittedMsg{err: f.Submit(ctx)} }
}

func (v *formView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w > 72 {
			w = 72
		}
		for _, ti := range v.inputs {
			ti.Width = w
		}
		v.desc.SetWidth(w)
		return v, nil

	case hydratedMsg:
		v.loading = false
		if !errors.Is(msg.err, screen.ErrDisposed) {
			v.load(v.form.Record())
		}
		return v, nil

	case submittedMsg:
		var verr *screen.ValidationError
		if errors.As(msg.err, &verr) {
			if fields := verr.Result.Fields(); len(fields) > 0 {
				for slot, f := range slotFields {
					if f == fields[0] {
						return v, v.setFocus(slot)
					}
				}
			}
		}
		return v, nil

	case tea.KeyMsg:
		// inputs stay read-only until the record arrives
		if v.loading && msg.String() != "esc" {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			v.nav.GoTo(screen.PathTreatments)
			return v, nil
		case "tab", "down":
			if msg.String() == "down" && v.focus == slotDescription {
				break
			}
			return v, v.move(1)
		case "shift+tab", "up":
			if msg.String() == "up" && v.focus == slotDescription {
				break
			}
			return v, v.move(-1)
		case "ctrl+s":
			return v, v.submit()
		case "enter":
			if v.focus == slotSubmit {
				return v, v.submit()
			}
			if v.focus != slotDescription {
				return v, v.move(1)
			}
		case "left", "right":
			if v.focus == slotKind {
				n := len(model.TreatmentKinds)
				if msg.String() == "left" {
					v.kindIdx = (v.kindIdx - 1 + n) % n
				} else {
					v.kindIdx = (v.kindIdx + 1) % n
				}
				v.setField(screen.FieldKind, string(model.TreatmentKinds[v.kindIdx]))
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case v.focus == slotDescription:
		v.desc, cmd = v.desc.Update(msg)
		v.setField(screen.FieldDescription, v.desc.Value())
	case v.inputs[v.focus] != nil:
		ti := v.inputs[v.focus]
		*ti, cmd = ti.Update(msg)
		v.setField(slotFields[v.focus], ti.Value())
	}
	return v, cmd
}

func (v *formView) setField(field screen.Field, value string) {
	if err := v.form.SetField(field, value); err != nil {
		v.log.Warn("tui.formView.setField failed",
			zap.String("field", string(field)),
			zap.Error(err),
		)
	}
}

func (v *formView) View() string {
	heading := "ADD TREATMENT"
	if v.recordID != "" {
		heading = "EDIT TREATMENT"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	if v.loading {
		b.WriteString(pendingStyle.Render("loading..."))
		return b.String()
	}

	errs := v.form.VisibleErrors()
	for slot := slotTitle; slot < slotSubmit; slot++ {
		b.WriteString("\n" + labelStyle.Render(slotLabels[slot]) + "\n")
		switch slot {
		case slotKind:
			b.WriteString(v.kindView() + "\n")
		case slotDescription:
			b.WriteString(v.desc.View() + "\n")
		default:
			b.WriteString(v.inputs[slot].View() + "\n")
		}
		if msg, ok := errs[slotFields[slot]]; ok {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n" + v.buttonView())
	b.WriteString("\n\n" + helpStyle.Render("tab/shift+tab move • ←/→ kind • ctrl+s save • esc back"))
	return b.String()
}

func (v *formView) kindView() string {
	parts := make([]string, 0, len(model.TreatmentKinds))
	for i, k := range model.TreatmentKinds {
		label := k.Label()
		if i == v.kindIdx {
			if v.focus == slotKind {
				label = selectedStyle.Render(label)
			} else {
				label = accentStyle.Render(label)
			}
		} else {
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (v *formView) buttonView() string {
	label := "CREATE"
	if v.recordID != "" {
		label = "UPDATE"
	}
	switch {
	case v.form.Submitting():
		return buttonDisabledStyle.Render(label + "...")
	case v.focus == slotSubmit:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

func (v *formView) Dispose() { v.form.Dispose() }
