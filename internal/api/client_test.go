package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/idilsaglam/healthlog/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithHTTPClient(srv.Client())}, opts...)
	return NewClient(srv.URL+"/api/v1/", zap.NewNop(), opts...)
}

func TestAppointmentsIndex(t *testing.T) {
	var gotReq *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set(HeaderContentType, MIMEApplicationJSON)
		io.WriteString(w, `[{"id":"1","title":"Checkup","professional_name":"Dr. Ana","date":"10/01/2025"}]`)
	}, WithTokenSource(func() (string, error) { return "tok", nil }))

	got, err := c.Appointments().Index(context.Background(), model.PageQuery{Page: 2, Search: "ana"})
	require.NoError(t, err)

	assert.Equal(t, []model.AppointmentSummary{
		{ID: "1", Title: "Checkup", ProfessionalName: "Dr. Ana", Date: "10/01/2025"},
	}, got)
	assert.Equal(t, http.MethodGet, gotReq.Method)
	assert.Equal(t, "/api/v1/appointments", gotReq.URL.Path)
	assert.Equal(t, "2", gotReq.URL.Query().Get("page"))
	assert.Equal(t, "ana", gotReq.URL.Query().Get("search"))
	assert.Equal(t, "Bearer tok", gotReq.Header.Get(HeaderAuthorization))
	assert.NotEmpty(t, gotReq.Header.Get(HeaderRequestID))
}

func TestIndexWithoutTokenOmitsAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(HeaderAuthorization))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		io.WriteString(w, `[]`)
	})

	got, err := c.Treatments().Index(context.Background(), model.PageQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTreatmentsCreateAndUpdate(t *testing.T) {
	var bodies []model.TreatmentRecord
	var paths, methods []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var rec model.TreatmentRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		bodies = append(bodies, rec)
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		assert.Equal(t, MIMEApplicationJSON, r.Header.Get(HeaderContentType))
		rec.ID = "7"
		json.NewEncoder(w).Encode(rec)
	})

	rec := model.TreatmentRecord{ID: "ignored", Title: "Physio", Kind: model.KindPhysiotherapy, Date: "01/03/2025", TreatmentLocation: "Clinic"}
	created, err := c.Treatments().Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID)

	_, err = c.Treatments().Update(context.Background(), "7", rec)
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodPost, http.MethodPut}, methods)
	assert.Equal(t, []string{"/api/v1/treatments", "/api/v1/treatments/7"}, paths)
	assert.Empty(t, bodies[0].ID)
	assert.Equal(t, "Physio", bodies[1].Title)
}

func TestTreatmentsShow(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/treatments/abc", r.URL.Path)
		io.WriteString(w, `{"id":"abc","title":"Tooth","kind":"dental","date":"25/12/2024","treatment_location":"Downtown"}`)
	})

	rec, err := c.Treatments().Show(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "25/12/2024", rec.Date)
	assert.Equal(t, model.KindDental, rec.Kind)

	_, err = c.Treatments().Show(context.Background(), "")
	assert.Error(t, err)
}

func TestErrorWithFullMessages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"errors":{"full_messages":["A","B"]}}`)
	})

	_, err := c.Treatments().Create(context.Background(), model.TreatmentRecord{Title: "x"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, []string{"A", "B"}, FullMessages(err))
	assert.NotEmpty(t, apiErr.RequestID)
	assert.Contains(t, err.Error(), "A; B")
}

func TestErrorWithoutStructuredBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `oops`)
	})

	_, err := c.Appointments().Index(context.Background(), model.PageQuery{Page: 1})
	require.Error(t, err)
	assert.Nil(t, FullMessages(err))
	assert.False(t, IsNotFound(err))
}

func TestNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := c.Treatments().Show(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestTransportErrorIsWrapped(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", zap.NewNop(), WithTimeout(time.Second))
	_, err := c.Appointments().Index(context.Background(), model.PageQuery{Page: 1})
	require.Error(t, err)
	assert.Nil(t, FullMessages(err))
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, WithTimeout(50*time.Millisecond))

	_, err := c.Appointments().Index(context.Background(), model.PageQuery{Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTokenSourceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}, WithTokenSource(func() (string, error) { return "", errors.New("broken keyring") }))

	_, err := c.Appointments().Index(context.Background(), model.PageQuery{Page: 1})
	assert.ErrorContains(t, err, "broken keyring")
}

func TestRateLimitHonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}, WithRateLimit(1))

	_, err := c.Appointments().Index(context.Background(), model.PageQuery{Page: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Appointments().Index(ctx, model.PageQuery{Page: 2})
	assert.Error(t, err)
}
