package server

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatedesk/internal/config"
	"gatedesk/internal/db"
)

var testNow = time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()
	dbh, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })

	cfg := config.Default()
	cfg.Timezone = "UTC"
	s := New(dbh, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return testNow }
	return s, dbh
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateSession(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/sessions", `{"duration":1500,"mode":"focus","session_label":"DSA","notes":"graphs"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	sessions, err := db.RecentSessions(dbh, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1500, sessions[0].Duration)
	assert.Equal(t, "DSA", sessions[0].SessionLabel)
}

func TestCreateSessionValidation(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/sessions", `{"duration":0,"mode":"focus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	w = doJSON(t, h, http.MethodPost, "/sessions", `{"duration":600,"mode":"manual","date":"13-03-2024"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/sessions", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sessions, err := db.RecentSessions(dbh, 10)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestCreateSessionManualBackfill(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/sessions", `{"duration":2700,"mode":"manual","date":"2024-01-10"}`)
	require.Equal(t, http.StatusOK, w.Code)

	sessions, err := db.RecentSessions(dbh, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), sessions[0].EndTime.UTC())
	assert.Equal(t, time.Date(2024, 1, 10, 11, 15, 0, 0, time.UTC), sessions[0].StartTime.UTC())
}

func TestDeleteSession(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	_, err := db.RecordSession(dbh, time.UTC, testNow, db.NewSession{Duration: 900, Mode: "focus"})
	require.NoError(t, err)

	// unknown id is still success, and changes nothing
	w := doJSON(t, h, http.MethodDelete, "/sessions/424242", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	sessions, err := db.RecentSessions(dbh, 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	w = doJSON(t, h, http.MethodDelete, "/sessions/notanid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalysis(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/sessions/analysis", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"daily":0,"weekly":0,"monthly":0,"total":0}`, w.Body.String())

	_, err := db.RecordSession(dbh, time.UTC, testNow, db.NewSession{Duration: 1500, Mode: "focus"})
	require.NoError(t, err)

	w = doJSON(t, h, http.MethodGet, "/sessions/analysis", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary db.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.GreaterOrEqual(t, summary.Daily, int64(1500))
	assert.Equal(t, int64(1500), summary.Total)
}

func TestAnalysisDegradesWhenStoreUnavailable(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()
	require.NoError(t, dbh.Close())

	w := doJSON(t, h, http.MethodGet, "/sessions/analysis", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"daily":0,"weekly":0,"monthly":0,"total":0}`, w.Body.String())

	w = doJSON(t, h, http.MethodGet, "/sessions/chart?view=daily", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestChart(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/sessions/chart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var buckets []db.ChartBucket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buckets))
	require.Len(t, buckets, 7, "daily is the default view")

	_, err := db.RecordSession(dbh, time.UTC, testNow, db.NewSession{Duration: 300, Mode: "focus"})
	require.NoError(t, err)
	_, err = db.RecordSession(dbh, time.UTC, testNow, db.NewSession{Duration: 300, Mode: "short"})
	require.NoError(t, err)

	w = doJSON(t, h, http.MethodGet, "/sessions/chart?view=daily", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buckets))
	require.Len(t, buckets, 7)
	assert.Equal(t, 0, buckets[6].Minutes, "+5 focus and -5 short cancel out")

	w = doJSON(t, h, http.MethodGet, "/sessions/chart?view=weekly", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buckets))
	assert.Len(t, buckets, 4)

	w = doJSON(t, h, http.MethodGet, "/sessions/chart?view=monthly", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buckets))
	assert.Len(t, buckets, 6)

	w = doJSON(t, h, http.MethodGet, "/sessions/chart?view=yearly", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryNewestFirst(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	for i := 0; i < 12; i++ {
		_, err := db.RecordSession(dbh, time.UTC, testNow.Add(-time.Duration(i)*time.Hour), db.NewSession{Duration: 600, Mode: "focus"})
		require.NoError(t, err)
	}

	w := doJSON(t, h, http.MethodGet, "/sessions/history", "")
	require.Equal(t, http.StatusOK, w.Code)

	var sessions []db.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	require.Len(t, sessions, 10)
	assert.True(t, sessions[0].StartTime.After(sessions[9].StartTime))
}

func TestStats(t *testing.T) {
	s, dbh := newTestServer(t)
	h := s.Handler()

	_, err := db.RecordSession(dbh, time.UTC, testNow, db.NewSession{Duration: 600, Mode: "focus"})
	require.NoError(t, err)

	w := doJSON(t, h, http.MethodGet, "/sessions/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats []db.ModeStat
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, "focus", stats[0].Mode)
}
