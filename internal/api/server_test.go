package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathwheel/internal/quiz"
	"github.com/abhisek/mathwheel/internal/store"
)

type fixedWheel struct{}

func (fixedWheel) IntN(int) int     { return 0 }
func (fixedWheel) Float64() float64 { return 0.5 }

func newTestServer(t *testing.T, withStore bool) (*Server, *httptest.Server) {
	t.Helper()
	opts := Options{
		CORSOrigins: []string{"http://localhost:3000"},
		Questions:   quiz.New(quiz.NewSeededSource(7)),
		Wheel:       fixedWheel{},
		Log:         zerolog.Nop(),
	}
	if withStore {
		st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
		opts.Rounds = st.RoundRepo()
	}
	s := New(opts)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, false)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestListOperations(t *testing.T) {
	_, ts := newTestServer(t, false)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/v1/operations", "")
	require.Equal(t, http.StatusOK, status)

	ops, ok := body["operations"].([]any)
	require.True(t, ok)
	require.Len(t, ops, 4)

	var names []string
	for _, o := range ops {
		m := o.(map[string]any)
		names = append(names, m["operation"].(string))
		assert.NotEmpty(t, m["color"])
		assert.NotNil(t, m["lesson"])
	}
	assert.Equal(t, []string{"addition", "multiplication", "subtraction", "division"}, names)
}

func TestCreateSpin(t *testing.T) {
	s, ts := newTestServer(t, false)
	status, body := doJSON(t, http.MethodPost, ts.URL+"/v1/spins", "")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "division", body["operation"])
	assert.EqualValues(t, 5, body["turns"])
	assert.InDelta(t, 5*360+45, body["degrees"], 1e-9)

	n, err := s.Metrics().Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range n {
		if mf.GetName() == "mathwheel_spins_total" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, 1.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found, "spins counter not exported")
}

func TestGetSegment(t *testing.T) {
	_, ts := newTestServer(t, false)

	tests := []struct {
		query  string
		status int
		op     string
		code   string
	}{
		{"angle=765", http.StatusOK, "division", ""},
		{"angle=0", http.StatusOK, "addition", ""},
		{"angle=-90", http.StatusOK, "multiplication", ""},
		{"angle=abc", http.StatusBadRequest, "", "invalid_angle"},
		{"angle=NaN", http.StatusBadRequest, "", "invalid_angle"},
		{"", http.StatusBadRequest, "", "missing_angle"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, body := doJSON(t, http.MethodGet, ts.URL+"/v1/segments?"+tt.query, "")
			assert.Equal(t, tt.status, status)
			if tt.op != "" {
				assert.Equal(t, tt.op, body["operation"])
			}
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(body))
			}
		})
	}
}

func TestCreateQuestionWithholdsAnswer(t *testing.T) {
	_, ts := newTestServer(t, false)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/v1/questions", `{"operation":"÷"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "division", body["operation"])
	assert.NotEmpty(t, body["question_id"])
	assert.NotContains(t, body, "answer")

	a := int(body["operand_a"].(float64))
	b := int(body["operand_b"].(float64))
	require.NotZero(t, b)
	assert.Zero(t, a%b, "division must be exact")

	options := body["options"].([]any)
	assert.Len(t, options, quiz.OptionCount)
	assert.Contains(t, options, float64(a/b))
}

func TestCreateQuestionRejectsBadInput(t *testing.T) {
	_, ts := newTestServer(t, false)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/v1/questions", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "missing_operation", errorCode(body))

	status, body = doJSON(t, http.MethodPost, ts.URL+"/v1/questions", `{"operation":"modulo"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_body", errorCode(body))

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/v1/questions", ``)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSubmitAnswerRecordsRound(t *testing.T) {
	_, ts := newTestServer(t, true)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/v1/answers",
		`{"operand_a":21,"operand_b":3,"operation":"division","options":[4,8,9,7],"choice":7,"session_id":"kid"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["correct"])
	assert.EqualValues(t, 7, body["answer"])
	assert.Equal(t, "21 ÷ 3 = 7", body["equation"])

	status, body = doJSON(t, http.MethodPost, ts.URL+"/v1/answers",
		`{"operand_a":50,"operand_b":8,"operation":"-","choice":40,"session_id":"kid"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["correct"])
	assert.EqualValues(t, 42, body["answer"])

	status, body = doJSON(t, http.MethodGet, ts.URL+"/v1/stats", "")
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["attempts"])
	assert.EqualValues(t, 1, stats["correct"])
	assert.EqualValues(t, 1, stats["sessions"])
	assert.InDelta(t, 0.5, body["accuracy"], 1e-9)
}

func TestSubmitAnswerRejectsInconsistentQuestion(t *testing.T) {
	_, ts := newTestServer(t, true)

	tests := []string{
		`{"operand_a":22,"operand_b":3,"operation":"/","choice":7}`,
		`{"operand_a":5,"operand_b":0,"operation":"/","choice":0}`,
		`{"operand_a":3,"operand_b":5,"operation":"-","choice":2}`,
		`{"operand_a":4294967296,"operand_b":4294967296,"operation":"multiplication","choice":0}`,
		`{"operand_a":9223372036854775807,"operand_b":1,"operation":"+","choice":0}`,
		`{"operand_a":-4,"operand_b":-3,"operation":"*","choice":12}`,
	}
	for _, body := range tests {
		status, resp := doJSON(t, http.MethodPost, ts.URL+"/v1/answers", body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, "invalid_question", errorCode(resp), body)
	}

	_, resp := doJSON(t, http.MethodGet, ts.URL+"/v1/stats", "")
	assert.EqualValues(t, 0, resp["stats"].(map[string]any)["attempts"])
}

// brokenRounds fails every call.
type brokenRounds struct{}

var errDiskFull = errors.New("disk full")

func (brokenRounds) AppendRound(context.Context, *store.Round) error { return errDiskFull }
func (brokenRounds) Reset(context.Context) error                     { return errDiskFull }
func (brokenRounds) Stats(context.Context) (*store.Stats, error)     { return nil, errDiskFull }
func (brokenRounds) RecentRounds(context.Context, int) ([]store.Round, error) {
	return nil, errDiskFull
}

func TestStoreFailures(t *testing.T) {
	s := New(Options{Rounds: brokenRounds{}, Log: zerolog.Nop()})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/v1/answers",
		`{"operand_a":6,"operand_b":7,"operation":"*","choice":42}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "store_failed", errorCode(body))

	status, body = doJSON(t, http.MethodGet, ts.URL+"/v1/stats", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", errorCode(body))
}

func TestStatsWithoutStore(t *testing.T) {
	_, ts := newTestServer(t, false)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/v1/stats", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "no_store", errorCode(body))
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, false)
	doJSON(t, http.MethodPost, ts.URL+"/v1/spins", "")

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `mathwheel_spins_total{operation="division"} 1`)
	assert.Contains(t, string(raw), "mathwheel_http_request_duration_seconds")
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t, false)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/v1/questions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
