package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haberhub/scraper/internal/api"
	"github.com/haberhub/scraper/internal/config"
	"github.com/haberhub/scraper/internal/database"
	"github.com/haberhub/scraper/internal/domain"
	"github.com/haberhub/scraper/internal/logger"
)

type fakeTrigger struct {
	command *domain.Command
	err     error
}

func (f *fakeTrigger) Enqueue(_ context.Context, kind string) (*domain.Command, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.command == nil {
		f.command = &domain.Command{
			ID:      "cmd-1",
			Command: kind,
			Status:  domain.CommandStatusPending,
		}
	}
	return f.command, nil
}

type fakeCommandReader struct {
	command *domain.Command
	err     error
}

func (f *fakeCommandReader) FindLatest(_ context.Context) (*domain.Command, error) {
	return f.command, f.err
}

type fakeMappingReader struct {
	mappings []domain.SourceMapping
	err      error
}

func (f *fakeMappingReader) ListAll(_ context.Context) ([]domain.SourceMapping, error) {
	return f.mappings, f.err
}

type fakePinger struct {
	err error
}

func (f *fakePinger) PingContext(_ context.Context) error { return f.err }

type handlerDeps struct {
	trigger  *fakeTrigger
	commands *fakeCommandReader
	mappings *fakeMappingReader
	pinger   *fakePinger
}

func newTestRouter(deps handlerDeps) http.Handler {
	if deps.trigger == nil {
		deps.trigger = &fakeTrigger{}
	}
	if deps.commands == nil {
		deps.commands = &fakeCommandReader{}
	}
	if deps.mappings == nil {
		deps.mappings = &fakeMappingReader{}
	}
	if deps.pinger == nil {
		deps.pinger = &fakePinger{}
	}

	handler := api.NewHandler(deps.trigger, deps.commands, deps.mappings, deps.pinger, logger.NewNoop())
	return api.SetupRouter(handler, &config.Config{})
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestHandleRunNow(t *testing.T) {	router := newTestRouter(handlerDeps{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/scrape/run", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "cmd-1", body["command_id"])
	assert.Equal(t, domain.CommandStatusPending, body["status"])
}

func TestHandleRunNow_EnqueueFails(t *testing.T) {	router := newTestRouter(handlerDeps{
		trigger: &fakeTrigger{err: errors.New("connection refused")},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/scrape/run", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestHandleStatus(t *testing.T) {	payload := "connection refused"
	executed := time.Now()
	router := newTestRouter(handlerDeps{
		commands: &fakeCommandReader{command: &domain.Command{
			ID:         "cmd-9",
			Command:    domain.CommandCronRun,
			Status:     domain.CommandStatusFailed,
			Payload:    &payload,
			ExecutedAt: &executed,
		}},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/status", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "cmd-9", body["id"])
	assert.Equal(t, domain.CommandStatusFailed, body["status"])
	assert.Equal(t, payload, body["payload"])
}

func TestHandleStatus_NoRuns(t *testing.T) {	router := newTestRouter(handlerDeps{
		commands: &fakeCommandReader{err: database.ErrNotFound},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/status", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandleStatus_StoreError(t *testing.T) {	router := newTestRouter(handlerDeps{
		commands: &fakeCommandReader{err: errors.New("connection refused")},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/status", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestHandleMappings(t *testing.T) {	count := 4
	router := newTestRouter(handlerDeps{
		mappings: &fakeMappingReader{mappings: []domain.SourceMapping{
			{ID: 1, SourceName: "aa", SourceURL: "https://www.example.com/rss.xml",
				TargetCategory: "gundem", IsActive: true, LastItemCount: &count},
			{ID: 2, SourceName: "mynet", SourceURL: "https://www.example.com/kadin",
				TargetCategory: "yasam", IsActive: false},
		}},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/mappings", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	assert.EqualValues(t, 2, body["count"])

	mappings, ok := body["mappings"].([]any)
	require.True(t, ok)
	require.Len(t, mappings, 2)

	first, ok := mappings[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aa", first["source_name"])
	assert.EqualValues(t, 4, first["last_item_count"])
}

func TestHandleHealth(t *testing.T) {	router := newTestRouter(handlerDeps{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", decodeBody(t, recorder)["status"])
}

func TestHandleHealth_Degraded(t *testing.T) {	router := newTestRouter(handlerDeps{
		pinger: &fakePinger{err: errors.New("connection refused")},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "degraded", decodeBody(t, recorder)["status"])
}
