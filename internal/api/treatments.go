package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/idilsaglam/healthlog/internal/model"
)

const resourceTreatments = "/treatments"

var errMissingID = errors.New("treatment id is required")

type Treatments struct{ c *Client }

func (t *Treatments) Index(ctx context.Context, q model.PageQuery) ([]model.TreatmentSummary, error) {
	var out []model.TreatmentSummary
	if err := t.c.do(ctx, http.MethodGet, resourceTreatments, pageValues(q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Show returns the stored record; its date is in wire format.
func (t *Treatments) Show(ctx context.Context, id string) (model.TreatmentRecord, error) {
	var out model.TreatmentRecord
	if id == "" {
		return out, errMissingID
	}
	err := t.c.do(ctx, http.MethodGet, treatmentPath(id), nil, nil, &out)
	return out, err
}

func (t *Treatments) Create(ctx context.Context, rec model.TreatmentRecord) (model.TreatmentRecord, error) {
	var out model.TreatmentRecord
	rec.ID = ""
	err := t.c.do(ctx, http.MethodPost, resourceTreatments, nil, rec, &out)
	return out, err
}

func (t *Treatments) Update(ctx context.Context, id string, rec model.TreatmentRecord) (model.TreatmentRecord, error) {
	var out model.TreatmentRecord
	if id == "" {
		return out, errMissingID
	}
	err := t.c.do(ctx, http.MethodPut, treatmentPath(id), nil, rec, &out)
	return out, err
}

func treatmentPath(id string) string {
	return resourceTreatments + "/" + url.PathEscape(id)
}
