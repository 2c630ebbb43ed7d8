package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/healthlog/internal/model"
	"github.com/idilsaglam/healthlog/internal/screen"
)

// row adapts a summary record to bubbles/list.Item
type row struct {
	id     string
	title  string
	detail string
	date   string
}

// Implement list.Item interface
func (r row) Title() string       { return r.title }
func (r row) Description() string { return r.detail }
func (r row) FilterValue() string { return r.title }

// Custom delegate to control how rows render (single line)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, _ := item.(row)
	line := fmt.Sprintf("%s  %s  %s",
		accentStyle.Render(r.date),
		r.title,
		mutedStyle.Render(r.detail),
	)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type pageLoadedMsg struct {
	route string
	err   error
}

var (
	searchBind = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	moreBind   = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more"))
	switchBind = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list"))
	quitBind   = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	newBind    = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new"))
	editBind   = key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit"))
)

// listView is a paginated, searchable list screen over a ListFetcher.
type listView[T any] struct {
	ctx     context.Context
	route   string
	heading string
	fetcher *screen.ListFetcher[T]
	toRow   func(T) row
	nav     screen.Navigator
	// onKey handles screen-specific keys; handled=false falls through.
	onKey func(v *listView[T], msg tea.KeyMsg) (handled bool, cmd tea.Cmd)

	list      list.Model
	search    textinput.Model
	searching bool
	spinner   spinner.Model
}

func newListView[T any](ctx context.Context, route, heading string, fetcher *screen.ListFetcher[T], toRow func(T) row, nav screen.Navigator, extra ...key.Binding) *listView[T] {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = heading
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("entry", "entries")
	l.KeyMap.Quit.SetEnabled(false)

	binds := append([]key.Binding{searchBind, moreBind, switchBind, quitBind}, extra...)
	l.AdditionalShortHelpKeys = func() []key.Binding { return binds }
	l.AdditionalFullHelpKeys = func() []key.Binding { return binds }

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search..."
	ti.CharLimit = 120

	return &listView[T]{
		ctx:     ctx,
		route:   route,
		heading: heading,
		fetcher: fetcher,
		toRow:   toRow,
		nav:     nav,
		list:    l,
		search:  ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init triggers the first page with an empty search term.
func (v *listView[T]) Init() tea.Cmd {
	return v.load(false, "")
}

func (v *listView[T]) load(restart bool, term string) tea.Cmd {
	ctx, f, route := v.ctx, v.fetcher, v.route
	fetch := func() tea.Msg {
		var err error
		if restart {
			err = f.Restart(ctx, term)
		} else {
			err = f.LoadNextPage(ctx, term)
		}
		return pageLoadedMsg{route: route, err: err}
	}
	return tea.Batch(fetch, v.spinner.Tick)
}

func (v *listView[T]) refresh() tea.Cmd {
	items := v.fetcher.Items()
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, v.toRow(it))
	}
	return v.list.SetItems(rows)
}

func (v *listView[T]) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.list.SetSize(msg.Width, msg.Height-2)
		return v, nil

	case pageLoadedMsg:
		if msg.route != v.route {
			return v, nil
		}
		return v, v.refresh()

	case spinner.TickMsg:
		if !v.fetcher.Fetching() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		if v.onKey != nil {
			if handled, cmd := v.onKey(v, msg); handled {
				return v, cmd
			}
		}
		switch {
		case key.Matches(msg, quitBind):
			v.Dispose()
			return v, tea.Quit
		case key.Matches(msg, searchBind):
			v.searching = true
			v.search.SetValue(v.fetcher.Search())
			v.search.CursorEnd()
			return v, v.search.Focus()
		case key.Matches(msg, moreBind):
			return v, v.loadMore()
		case key.Matches(msg, switchBind):
			if v.route == screen.PathAppointments {
				v.nav.GoTo(screen.PathTreatments)
			} else {
				v.nav.GoTo(screen.PathAppointments)
			}
			return v, nil
		case msg.String() == "down" || msg.String() == "j":
			// scrolling past the last row asks for the next page
			if n := len(v.list.Items()); n > 0 && v.list.Index() == n-1 {
				return v, v.loadMore()
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *listView[T]) loadMore() tea.Cmd {
	if v.fetcher.Fetching() || !v.fetcher.HasMore() {
		return nil
	}
	return v.load(false, v.fetcher.Search())
}

func (v *listView[T]) updateSearch(msg tea.KeyMsg) (view, tea.Cmd) {
	switch msg.String() {
	case "enter":
		term := strings.TrimSpace(v.search.Value())
		v.searching = false
		v.search.Blur()
		if v.fetcher.Fetching() {
			return v, nil
		}
		return v, v.load(true, term)
	case "esc":
		v.searching = false
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *listView[T]) View() string {
	var b strings.Builder
	b.WriteString(v.list.View())
	b.WriteString("\n")
	switch {
	case v.searching:
		b.WriteString(v.search.View())
	case v.fetcher.Fetching():
		b.WriteString(v.spinner.View() + pendingStyle.Render(" loading page "+fmt.Sprint(v.fetcher.Page())+"..."))
	case !v.fetcher.HasMore():
		b.WriteString(mutedStyle.Render("end of list"))
	case v.fetcher.Search() != "":
		b.WriteString(mutedStyle.Render("search: " + v.fetcher.Search()))
	}
	return b.String()
}

func (v *listView[T]) Dispose() { v.fetcher.Dispose() }

func (v *listView[T]) selected() (row, bool) {
	r, ok := v.list.SelectedItem().(row)
	return r, ok
}

func appointmentRow(a model.AppointmentSummary) row {
	return row{id: a.ID, title: a.Title, detail: a.ProfessionalName, date: a.Date}
}

func treatmentRow(t model.TreatmentSummary) row {
	return row{id: t.ID, title: t.Title, detail: t.Kind.Label() + " · " + t.TreatmentLocation, date: t.Date}
}

func newAppointmentList(ctx context.Context, deps Deps, toasts screen.Notifier, nav screen.Navigator) view {
	f := screen.NewListFetcher(deps.Appointments, toasts, screen.ListOptions{
		PageSize:       deps.PageSize,
		FailureMessage: screen.MsgAppointmentsLoadFailed,
		Logger:         deps.Log,
	})
	return newListView(ctx, screen.PathAppointments, "Appointments", f, appointmentRow, nav)
}

func newTreatmentList(ctx context.Context, deps Deps, toasts screen.Notifier, nav screen.Navigator) view {
	f := screen.NewListFetcher(deps.Treatments, toasts, screen.ListOptions{
		PageSize:       deps.PageSize,
		FailureMessage: screen.MsgTreatmentsLoadFailed,
		Logger:         deps.Log,
	})
	v := newListView(ctx, screen.PathTreatments, "Treatments", f, treatmentRow, nav, newBind, editBind)
	v.onKey = func(v *listView[model.TreatmentSummary], msg tea.KeyMsg) (bool, tea.Cmd) {
		switch {
		case key.Matches(msg, newBind):
			v.nav.GoTo(screen.PathNewTreatment)
			return true, nil
		case key.Matches(msg, editBind):
			if r, ok := v.selected(); ok {
				v.nav.GoTo(screen.EditTreatmentPath(r.id))
			}
			return true, nil
		}
		return false, nil
	}
	return v
}
