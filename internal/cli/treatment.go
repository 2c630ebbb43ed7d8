package cli

import (
	"context"
	"errors"
	"flag"

	"go.uber.org/zap"

	"github.com/idilsaglam/healthlog/internal/api"
	"github.com/idilsaglam/healthlog/internal/screen"
	"github.com/idilsaglam/healthlog/internal/ui"
)

// logNavigator stands in for screen navigation: a command ends after
// submit, so the target route is only logged.
type logNavigator struct{ log *zap.Logger }

func (n logNavigator) GoTo(path string) { n.log.Debug("cli navigate", zap.String("path", path)) }

func (a *App) newForm() *screen.TreatmentForm {
	return screen.NewTreatmentForm(a.API.Treatments(), ui.Console{}, logNavigator{log: a.Log}, a.Log)
}

// treatmentFlags maps command-line flags onto form fields.
type treatmentFlags struct {
	fs     *flag.FlagSet
	values map[screen.Field]*string
}

func newTreatmentFlags(name string) *treatmentFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &treatmentFlags{
		fs: fs,
		values: map[screen.Field]*string{
			screen.FieldTitle:             fs.String("title", "", "treatment title"),
			screen.FieldKind:              fs.String("kind", "", "medicine|physiotherapy|aesthetic|dental|spiritual|psychotherapy"),
			screen.FieldDescription:       fs.String("description", "", "free-form notes"),
			screen.FieldDate:              fs.String("date", "", "date as YYYY-MM-DD"),
			screen.FieldTreatmentLocation: fs.String("location", "", "where the treatment happens"),
			screen.FieldFiles:             fs.String("files", "", "attachment reference"),
		},
	}
}

var flagFields = map[string]screen.Field{
	"title":       screen.FieldTitle,
	"kind":        screen.FieldKind,
	"description": screen.FieldDescription,
	"date":        screen.FieldDate,
	"location":    screen.FieldTreatmentLocation,
	"files":       screen.FieldFiles,
}

// apply copies only the flags given on the command line into the form.
func (tf *treatmentFlags) apply(form *screen.TreatmentForm) error {
	var err error
	tf.fs.Visit(func(f *flag.Flag) {
		field, ok := flagFields[f.Name]
		if !ok || err != nil {
			return
		}
		err = form.SetField(field, *tf.values[field])
	})
	return err
}

func (a *App) doTreatmentShow(ctx context.Context, args []string) int {
	if len(args) != 1 {
		ui.Fail("usage: healthlog treatment show <id>")
		return 2
	}
	form := a.newForm()
	if err := form.Hydrate(ctx, args[0]); err != nil {
		hintMissing(err, args[0])
		return 1
	}
	ui.Panel(summaryLines(form.Record()))
	return 0
}

func (a *App) doTreatmentAdd(ctx context.Context, args []string) int {
	tf := newTreatmentFlags("treatment add")
	if err := tf.fs.Parse(args); err != nil {
		return 2
	}
	form := a.newForm()
	if err := form.Hydrate(ctx, ""); err != nil {
		return 1
	}
	return a.submit(ctx, form, tf)
}

func (a *App) doTreatmentEdit(ctx context.Context, args []string) int {
	if len(args) == 0 {
		ui.Fail("usage: healthlog treatment edit <id> [flags]")
		return 2
	}
	tf := newTreatmentFlags("treatment edit")
	if err := tf.fs.Parse(args[1:]); err != nil {
		return 2
	}
	form := a.newForm()
	if err := form.Hydrate(ctx, args[0]); err != nil {
		hintMissing(err, args[0])
		return 1
	}
	return a.submit(ctx, form, tf)
}

func (a *App) submit(ctx context.Context, form *screen.TreatmentForm, tf *treatmentFlags) int {
	if err := tf.apply(form); err != nil {
		ui.Fail(err.Error())
		return 2
	}
	err := form.Submit(ctx)
	var verr *screen.ValidationError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &verr):
		for _, f := range verr.Result.Fields() {
			ui.Fail(verr.Result.Errors[f])
		}
		return 2
	default:
		// the form already reported the failure
		a.Log.Debug("cli treatment submit rejected",
			zap.Error(err),
			zap.Strings("messages", api.FullMessages(err)),
		)
		return 1
	}
}

func hintMissing(err error, id string) {
	if api.IsNotFound(err) {
		ui.Hint("no treatment with id " + id + "; list them with `healthlog treatments`")
	}
}
