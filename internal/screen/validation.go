package screen

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/idilsaglam/healthlog/internal/model"
)

// Field names a treatment form field by its JSON key.
type Field string

const (
	FieldTitle             Field = "title"
	FieldKind              Field = "kind"
	FieldDescription       Field = "description"
	FieldDate              Field = "date"
	FieldTreatmentLocation Field = "treatment_location"
	FieldFiles             Field = "files"
)

// FormFields is the order fields appear on the form.
var FormFields = []Field{
	FieldTitle,
	FieldKind,
	FieldDescription,
	FieldDate,
	FieldTreatmentLocation,
	FieldFiles,
}

var fieldMessages = map[Field]map[string]string{
	FieldTitle: {
		"required": "Title is a required field",
	},
	FieldDate: {
		"required": "Date is a required field",
		"datetime": "Date must be a valid date (YYYY-MM-DD)",
	},
	FieldTreatmentLocation: {
		"required": "Location is a required field",
	},
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationResult maps each failing field to its message.
type ValidationResult struct {
	Errors map[Field]string
}

func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// Fields lists the failing fields in form order.
func (r ValidationResult) Fields() []Field {
	out := make([]Field, 0, len(r.Errors))
	for _, f := range FormFields {
		if _, ok := r.Errors[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks a record as typed into the form (date as YYYY-MM-DD).
// Title, date and location are required; kind and description are free.
func Validate(rec model.TreatmentRecord) ValidationResult {
	res := ValidationResult{Errors: map[Field]string{}}
	err := validate.Struct(rec)
	if err == nil {
		return res
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors[FieldTitle] = err.Error()
		return res
	}
	for _, fe := range verrs {
		f := Field(fe.Field())
		if _, seen := res.Errors[f]; seen {
			continue
		}
		msg, ok := fieldMessages[f][fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		res.Errors[f] = msg
	}
	return res
}

// ValidationError blocks a submit that failed client-side checks.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Result.Errors))
	for _, f := range e.Result.Fields() {
		msgs = append(msgs, e.Result.Errors[f])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
