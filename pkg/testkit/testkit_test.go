package testkit

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := map[string]interface{}{"method": r.Method}
		if trace := r.Header.Get("X-Trace"); trace != "" {
			out["trace"] = trace
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			out["body"] = json.RawMessage(raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(out)
	})
}

func TestRunFile(t *testing.T) {
	RunFile(t, echoHandler(), "testdata/echo.json")
}

func TestRun(t *testing.T) {
	Run(t, echoHandler(), "testdata/single.json")
}

func TestLoadScenarioArray(t *testing.T) {
	scenarios, err := LoadScenarioArray("testdata/echo.json")
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	assert.Equal(t, "POST", scenarios[0].RequestMethod)
	assert.Equal(t, "GET", scenarios[2].RequestMethod)

	body, err := scenarios[1].body()
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 12.5}`, string(body))
}

func TestLoadScenarioRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	cases := map[string]string{
		"no name":     `{"requestUrl": "/", "expectedCode": 200}`,
		"no url":      `{"name": "x", "expectedCode": 200}`,
		"no code":     `{"name": "x", "requestUrl": "/"}`,
		"two bodies":  `{"name": "x", "requestUrl": "/", "expectedCode": 200, "requestBody": {}, "rawBody": "{"}`,
		"broken json": `{"name":`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScenario(write("s.json", content))
			assert.Error(t, err)
		})
	}

	_, err := LoadScenario(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDiffJSON(t *testing.T) {
	exp := map[string]interface{}{
		"a": float64(1),
		"b": []interface{}{"x", "y"},
		"c": map[string]interface{}{"d": true},
	}
	act := map[string]interface{}{
		"a":     float64(2),
		"b":     []interface{}{"x"},
		"extra": "ignored",
	}

	diffs := DiffJSON("", exp, act)
	assert.Len(t, diffs, 3)
	assert.Empty(t, DiffJSON("", exp, exp))
}
