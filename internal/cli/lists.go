package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/idilsaglam/healthlog/internal/model"
	"github.com/idilsaglam/healthlog/internal/screen"
	"github.com/idilsaglam/healthlog/internal/tui"
	"github.com/idilsaglam/healthlog/internal/ui"
)

func (a *App) doUI(ctx context.Context) int {
	deps := tui.Deps{
		Appointments: a.API.Appointments().Index,
		Treatments:   a.API.Treatments().Index,
		TreatmentAPI: a.API.Treatments(),
		PageSize:     a.Config.App.PageSize,
		Log:          a.Log,
	}
	if err := tui.Run(ctx, deps); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

type listArgs struct {
	pages  int
	search string
}

func parseListArgs(name string, args []string) (listArgs, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	pages := fs.Int("pages", 1, "number of pages to fetch")
	if err := fs.Parse(args); err != nil {
		return listArgs{}, err
	}
	if *pages < 1 {
		return listArgs{}, fmt.Errorf("%s: -pages must be at least 1", name)
	}
	return listArgs{pages: *pages, search: strings.Join(fs.Args(), " ")}, nil
}

// fetchPages drives a ListFetcher the way the screen does: one page at a
// time until the requested count or the end of the list.
func fetchPages[T any](ctx context.Context, f *screen.ListFetcher[T], la listArgs) error {
	for i := 0; i < la.pages; i++ {
		err := f.LoadNextPage(ctx, la.search)
		if errors.Is(err, screen.ErrNoMorePages) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) doAppointments(ctx context.Context, args []string) int {
	la, err := parseListArgs("appointments", args)
	if err != nil {
		ui.Fail(err.Error())
		return 2
	}
	f := screen.NewListFetcher(a.API.Appointments().Index, ui.Console{}, screen.ListOptions{
		PageSize:       a.Config.App.PageSize,
		FailureMessage: screen.MsgAppointmentsLoadFailed,
		Logger:         a.Log,
	})
	if err := fetchPages(ctx, f, la); err != nil {
		return 1
	}

	items := f.Items()
	lines := []string{listHeader("Appointments", len(items), la.search), ""}
	if len(items) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "no appointments"))
	}
	for i, it := range items {
		lines = append(lines, listLine(i, it.Date, it.Title, it.ProfessionalName))
	}
	lines = append(lines, "", listFooter(f.HasMore(), "appointments"))
	ui.Panel(lines)
	return 0
}

func (a *App) doTreatments(ctx context.Context, args []string) int {
	la, err := parseListArgs("treatments", args)
	if err != nil {
		ui.Fail(err.Error())
		return 2
	}
	f := screen.NewListFetcher(a.API.Treatments().Index, ui.Console{}, screen.ListOptions{
		PageSize:       a.Config.App.PageSize,
		FailureMessage: screen.MsgTreatmentsLoadFailed,
		Logger:         a.Log,
	})
	if err := fetchPages(ctx, f, la); err != nil {
		return 1
	}

	items := f.Items()
	lines := []string{listHeader("Treatments", len(items), la.search), ""}
	if len(items) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "no treatments"))
	}
	for i, it := range items {
		lines = append(lines, listLine(i, it.Date, it.Title, it.Kind.Label()+" · "+it.TreatmentLocation)+
			ui.Dim("  #"+it.ID))
	}
	lines = append(lines, "", listFooter(f.HasMore(), "treatments"))
	ui.Panel(lines)
	return 0
}

func listHeader(title string, n int, search string) string {
	t := ui.Current()
	h := fmt.Sprintf("%s  %s %d", ui.C(t.Title, title), ui.C(t.Accent, "Total"), n)
	if search != "" {
		h += "  " + ui.C(t.Muted, "search: "+search)
	}
	return h
}

func listLine(i int, date, title, detail string) string {
	t := ui.Current()
	return fmt.Sprintf("%s %s %s  %s",
		ui.Dim(fmt.Sprintf("%2d.", i+1)),
		ui.C(t.Accent, date),
		ui.Truncate(title, 60),
		ui.C(t.Muted, detail))
}

func listFooter(hasMore bool, cmd string) string {
	if hasMore {
		return ui.C(ui.Current().Muted, "Tip: more with `healthlog "+cmd+" -pages N`")
	}
	return ui.C(ui.Current().Muted, "end of list")
}

// summaryLines renders one treatment for `treatment show`.
func summaryLines(rec model.TreatmentRecord) []string {
	t := ui.Current()
	kv := func(k, v string) string { return ui.C(t.Muted, fmt.Sprintf("%-10s", k)) + " " + v }
	lines := []string{
		ui.C(t.Title, rec.Title) + ui.Dim("  #"+rec.ID),
		"",
		kv("kind", rec.Kind.Label()),
		kv("date", rec.Date),
		kv("location", rec.TreatmentLocation),
	}
	if rec.Description != "" {
		lines = append(lines, kv("notes", rec.Description))
	}
	if rec.Files != "" {
		lines = append(lines, kv("files", rec.Files))
	}
	return lines
}
