package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Run executes the single scenario at path against handler.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s)
	})
}

// RunFile executes every scenario in the array file at path, in order, as
// subtests. A failed step does not stop later steps.
func RunFile(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	scenarios, err := LoadScenarioArray(path)
	if err != nil {
		t.Fatalf("%v", err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s)
		})
	}
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	payload, err := s.body()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, reqBody)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.expected()
	if err != nil {
		t.Errorf("[%s] read expected body: %v", s.Name, err)
	} else if expected != nil {
		AssertJSONBody(t, s, expected, rec.Body.Bytes())
	}

	if len(s.ExpectedFields) > 0 {
		AssertJSONFields(t, s, rec.Body.Bytes())
	}
}
