package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/healthlog/internal/model"
	"github.com/idilsaglam/healthlog/internal/screen"
)

// Deps is what the screens need from the outside world.
type Deps struct {
	Appointments screen.PageSource[model.AppointmentSummary]
	Treatments   screen.PageSource[model.TreatmentSummary]
	TreatmentAPI screen.TreatmentService
	PageSize     int
	Log          *zap.Logger
}

// view is one screen of the app.
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (view, tea.Cmd)
	View() string
	// Dispose is called when the app navigates away.
	Dispose()
}

type toastTickMsg time.Time

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return toastTickMsg(t) })
}

type App struct {
	ctx    context.Context
	deps   Deps
	toasts *toastQueue
	nav    *router

	route   string
	current view
	width   int
	height  int
}

func NewApp(ctx context.Context, deps Deps, start string) App {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	a := App{
		ctx:    ctx,
		deps:   deps,
		toasts: newToastQueue(),
		nav:    &router{},
		width:  80,
		height: 24,
	}
	a.current, a.route = a.open(start)
	return a
}

// open builds the view for path, falling back to the appointment list.
func (a App) open(path string) (view, string) {
	kind, id := parseRoute(path)
	switch kind {
	case routeTreatments:
		return newTreatmentList(a.ctx, a.deps, a.toasts, a.nav), path
	case routeTreatmentForm:
		return newFormView(a.ctx, a.deps, a.toasts, a.nav, id), path
	default:
		return newAppointmentList(a.ctx, a.deps, a.toasts, a.nav), screen.PathAppointments
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.current.Init(), toastTick(), a.resize())
}

func (a App) resize() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.current.Dispose()
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		// leave room for the frame and toasts
		msg.Width -= 4
		msg.Height -= 4 + maxToasts
		var cmd tea.Cmd
		a.current, cmd = a.current.Update(msg)
		return a, cmd
	case toastTickMsg:
		a.toasts.prune()
		return a, toastTick()
	}

	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)

	if path := a.nav.take(); path != "" {
		a.deps.Log.Debug("tui.App navigate", zap.String("from", a.route), zap.String("to", path))
		a.current.Dispose()
		a.current, a.route = a.open(path)
		return a, tea.Batch(cmd, a.current.Init(), a.resize())
	}
	return a, cmd
}

func (a App) View() string {
	body := a.current.View()
	if t := a.toasts.View(); t != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", t)
	}
	return panelString(body)
}

// Route is the path of the screen on display.
func (a App) Route() string { return a.route }

// Run starts the interactive program on the appointment list.
func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(NewApp(ctx, deps, screen.PathAppointments), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
