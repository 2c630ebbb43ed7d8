package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/idilsaglam/healthlog/internal/model"
)

const resourceAppointments = "/appointments"

type Appointments struct{ c *Client }

// Index fetches one page of appointments.
func (a *Appointments) Index(ctx context.Context, q model.PageQuery) ([]model.AppointmentSummary, error) {
	var out []model.AppointmentSummary
	if err := a.c.do(ctx, http.MethodGet, resourceAppointments, pageValues(q), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pageValues(q model.PageQuery) url.Values {
	v := url.Values{}
	page := q.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("search", q.Search)
	return v
}
