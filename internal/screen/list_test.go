package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/healthlog/internal/model"
)

func newAppointmentList(svc *MockAppointments, n Notifier, opts ListOptions) *ListFetcher[model.AppointmentSummary] {
	opts.FailureMessage = MsgAppointmentsLoadFailed
	return NewListFetcher[model.AppointmentSummary](svc.Index, n, opts)
}

func TestListFetcher_FirstPageReplaces(t *testing.T) {
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1, Search: ""}).Return(appts("1", "2"), nil).Once()
	n := &recordingNotifier{}
	f := newAppointmentList(svc, n, ListOptions{})

	require.NoError(t, f.LoadNextPage(context.Background(), ""))

	assert.Equal(t, appts("1", "2"), f.Items())
	assert.Equal(t, 2, f.Page())
	assert.True(t, f.HasMore())
	assert.Equal(t, Idle, f.State())
	assert.Empty(t, n.all())
	svc.AssertExpectations(t)
}

func TestListFetcher_LaterPagesAppendInOrder(t *testing.T) {
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).Return(appts("1", "2"), nil).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 2}).Return(appts("3", "2"), nil).Once()
	f := newAppointmentList(svc, &recordingNotifier{}, ListOptions{})

	require.NoError(t, f.LoadNextPage(context.Background(), ""))
	require.NoError(t, f.LoadNextPage(context.Background(), ""))

	// duplicates are kept; the server owns uniqueness
	assert.Equal(t, appts("1", "2", "3", "2"), f.Items())
	assert.Equal(t, 3, f.Page())
}

func TestListFetcher_EmptyPageLeavesListAndEndsIt(t *testing.T) {
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).Return(appts("1"), nil).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 2}).Return([]model.AppointmentSummary{}, nil).Once()
	f := newAppointmentList(svc, &recordingNotifier{}, ListOptions{})

	require.NoError(t, f.LoadNextPage(context.Background(), ""))
	require.NoError(t, f.LoadNextPage(context.Background(), ""))

	assert.Equal(t, appts("1"), f.Items())
	assert.False(t, f.HasMore())

	err := f.LoadNextPage(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoMorePages)
	svc.AssertNumberOfCalls(t, "Index", 2)
}

func TestListFetcher_ShortPageEndsList(t *testing.T) {
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).Return(appts("1", "2"), nil).Once()
	f := newAppointmentList(svc, &recordingNotifier{}, ListOptions{PageSize: 3})

	require.NoError(t, f.LoadNextPage(context.Background(), ""))
	assert.False(t, f.HasMore())
}

func TestListFetcher_FailureKeepsListAndCursor(t *testing.T) {
	boom := errors.New("connection refused")
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).Return(appts("1"), nil).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 2}).Return(nil, boom).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 2}).Return(appts("2"), nil).Once()
	n := &recordingNotifier{}
	f := newAppointmentList(svc, n, ListOptions{})

	require.NoError(t, f.LoadNextPage(context.Background(), ""))
	err := f.LoadNextPage(context.Background(), "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, appts("1"), f.Items())
	assert.Equal(t, 2, f.Page())
	assert.Equal(t, []toast{{Kind: "error", Message: MsgAppointmentsLoadFailed}}, n.all())

	// the retry asks for the same page again
	require.NoError(t, f.LoadNextPage(context.Background(), ""))
	assert.Equal(t, appts("1", "2"), f.Items())
	svc.AssertExpectations(t)
}

func TestListFetcher_AdvanceOnFailure(t *testing.T) {
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	n := &recordingNotifier{}
	f := newAppointmentList(svc, n, ListOptions{AdvanceOnFailure: true})

	for i := 0; i < 3; i++ {
		assert.Error(t, f.LoadNextPage(context.Background(), ""))
	}

	assert.Equal(t, 4, f.Page())
	assert.Len(t, n.all(), 3)
	assert.Empty(t, f.Items())
}

func TestListFetcher_CursorCountsSuccesses(t *testing.T) {
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).Return(nil, errors.New("down")).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).Return(appts("1"), nil).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 2}).Return(nil, errors.New("down")).Once()
	f := newAppointmentList(svc, &recordingNotifier{}, ListOptions{})

	_ = f.LoadNextPage(context.Background(), "")
	_ = f.LoadNextPage(context.Background(), "")
	_ = f.LoadNextPage(context.Background(), "")

	assert.Equal(t, 1+1, f.Page())
}

func TestListFetcher_Restart(t *testing.T) {
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).Return(appts("1"), nil).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 2}).Return([]model.AppointmentSummary{}, nil).Once()
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1, Search: "dent"}).Return(appts("9"), nil).Once()
	f := newAppointmentList(svc, &recordingNotifier{}, ListOptions{})

	require.NoError(t, f.LoadNextPage(context.Background(), ""))
	require.NoError(t, f.LoadNextPage(context.Background(), ""))
	require.False(t, f.HasMore())

	require.NoError(t, f.Restart(context.Background(), "dent"))
	assert.Equal(t, appts("9"), f.Items())
	assert.Equal(t, "dent", f.Search())
	assert.True(t, f.HasMore())
	assert.Equal(t, 2, f.Page())
}

func TestListFetcher_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, model.PageQuery{Page: 1}).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(appts("1"), nil).Once()
	f := newAppointmentList(svc, &recordingNotifier{}, ListOptions{})

	done := make(chan error, 1)
	go func() { done <- f.LoadNextPage(context.Background(), "") }()
	<-started

	assert.True(t, f.Fetching())
	assert.ErrorIs(t, f.LoadNextPage(context.Background(), ""), ErrFetchInProgress)
	assert.ErrorIs(t, f.Restart(context.Background(), "x"), ErrFetchInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.Fetching())
	svc.AssertNumberOfCalls(t, "Index", 1)
}

func TestListFetcher_DisposeDropsLateResults(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, errors.New("late failure")).Once()
	n := &recordingNotifier{}
	f := newAppointmentList(svc, n, ListOptions{})

	done := make(chan error, 1)
	go func() { done <- f.LoadNextPage(context.Background(), "") }()
	<-started
	f.Dispose()
	close(release)

	assert.ErrorIs(t, <-done, ErrDisposed)
	assert.Empty(t, n.all())
	assert.ErrorIs(t, f.LoadNextPage(context.Background(), ""), ErrDisposed)
}

func TestListFetcher_CancelledContextDropsResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := new(MockAppointments)
	svc.On("Index", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(appts("1"), nil).Once()
	n := &recordingNotifier{}
	f := newAppointmentList(svc, n, ListOptions{})

	assert.ErrorIs(t, f.LoadNextPage(ctx, ""), context.Canceled)
	assert.Empty(t, f.Items())
	assert.Equal(t, 1, f.Page())
	assert.Empty(t, n.all())
}
