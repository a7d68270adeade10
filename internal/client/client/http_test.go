package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/ledgerbook/internal/client/models"
	"github.com/dmitrijs2005/ledgerbook/internal/logging"
	"github.com/dmitrijs2005/ledgerbook/internal/server/httpapi"
	"github.com/dmitrijs2005/ledgerbook/internal/server/records"
	"github.com/dmitrijs2005/ledgerbook/internal/timex"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroBackOff() backoff.BackOff { return &backoff.ZeroBackOff{} }

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := records.NewMemoryRepository([]models.Instrument{{ID: 1, DisplayAlias: "Blue card"}})
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(repo, logging.Nop()), logging.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, url string, opts ...Option) *HTTPClient {
	t.Helper()
	opts = append([]Option{WithBackOff(zeroBackOff)}, opts...)
	c, err := NewHTTPClient(url, 2*time.Second, logging.Nop(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func at(t *testing.T, s string) timex.LocalDateTime {
	t.Helper()
	v, err := timex.ParseLocal(s)
	require.NoError(t, err)
	return v
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("localhost", time.Second, logging.Nop())
	require.Error(t, err)
}

func TestHTTPClient_RecordLifecycle(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	in := models.Record{
		Type: models.RecordTypeExpense, Category: "MEAL", PaymentType: models.PaymentTypeCard,
		InstrumentID: models.ID(1), Content: "lunch", Amount: 9000, Date: at(t, "2026-10-02T12:30"),
	}
	require.NoError(t, c.CreateRecord(ctx, in))

	outside := in
	outside.Date = at(t, "2026-11-01T00:00")
	require.NoError(t, c.CreateRecord(ctx, outside))

	start, end := timex.MonthRange(time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local))
	got, err := c.ListRecords(ctx, models.Filter{Start: start, End: end}.Query())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Blue card", got[0].InstrumentAlias)
	assert.True(t, got[0].HasID())

	upd := got[0]
	upd = upd.WithMethod(models.Cash{})
	require.NoError(t, c.UpdateRecord(ctx, upd))

	got, err = c.ListRecords(ctx, models.Filter{Start: start, End: end}.Query())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.PaymentTypeCash, got[0].PaymentType)
	assert.Nil(t, got[0].InstrumentID)

	require.NoError(t, c.DeleteRecord(ctx, got[0].IDValue()))

	got, err = c.ListRecords(ctx, models.Filter{Start: start, End: end}.Query())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	instruments, err := c.ListInstruments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Instrument{{ID: 1, DisplayAlias: "Blue card"}}, instruments)
}

func TestHTTPClient_UpdateWithoutID(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	err := c.UpdateRecord(context.Background(), models.Record{})
	require.Error(t, err)
}

func TestHTTPClient_Rejection(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)

	err := c.DeleteRecord(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)

	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusNotFound, rej.StatusCode)
	assert.NotEmpty(t, rej.Message)
	assert.False(t, rej.Temporary())
}

func TestHTTPClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, `{"error":"busy"}`, http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"id":5,"displayAlias":"Gold"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithRetries(3))
	got, err := c.ListInstruments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Instrument{{ID: 5, DisplayAlias: "Gold"}}, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad range"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithRetries(3))
	_, err := c.ListRecords(context.Background(), models.RecordQuery{})

	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "bad range", rej.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_MutationsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, WithRetries(3))
	err := c.DeleteRecord(context.Background(), 1)
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, WithRetries(1))
	_, err := c.ListInstruments(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Cancelled(t *testing.T) {
	srv := newBackend(t)
	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListRecords(ctx, models.RecordQuery{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestHTTPClient_SendsRequestID(t *testing.T) {
	ids := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Ping(context.Background()))
	require.NoError(t, c.Ping(context.Background()))

	first, second := <-ids, <-ids
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}
