// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario file holds an ordered array of steps. Steps run one after
// another against the same handler, so later steps see what earlier ones
// wrote:
//
//	[
//	  {"name": "add", "requestMethod": "POST", "requestUrl": "/api/v1/helmet/add_helmet",
//	   "requestBody": {"type": 1, "name": "Arai J", "price": 2000000, "stock": 5},
//	   "expectedCode": 200, "expectedBody": "Added 'Arai J' as '2000000' to helmet with stock 5"},
//	  {"name": "list", "requestUrl": "/api/v1/helmet", "expectedCode": 200,
//	   "responseFileName": "list_res.json"}
//	]
//
// Usage:
//
//	testkit.RunFile(t, handler, "testdata/helmet_v1.json")
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario is one HTTP request and what it must return.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"` // defaults to GET
	RequestURL      string            `json:"requestUrl"`
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline body
	RequestFileName string            `json:"requestFileName"` // body file, relative to the scenario file
	RawBody         *string           `json:"rawBody"`         // sent verbatim, for malformed input
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int             `json:"expectedCode"`
	ExpectedBody     json.RawMessage `json:"expectedBody"`     // exact JSON match
	ResponseFileName string          `json:"responseFileName"` // exact JSON match from file
	ExpectedFields   map[string]any  `json:"expectedFields"`   // top-level keys that must match

	dir string
}

// LoadScenario reads a single scenario object from path.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// LoadScenarioArray reads an ordered array of scenarios from path.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve scenario array path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read scenario array %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}

	dir := filepath.Dir(abs)
	for i, s := range scenarios {
		s.dir = dir
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid scenario %d in %q: %w", i, abs, err)
		}
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)

	bodies := 0
	if len(s.RequestBody) > 0 {
		bodies++
	}
	if s.RequestFileName != "" {
		bodies++
	}
	if s.RawBody != nil {
		bodies++
	}
	if bodies > 1 {
		return fmt.Errorf("only one of requestBody, requestFileName and rawBody may be set")
	}
	return nil
}

// body returns the request payload, or nil for none.
func (s *Scenario) body() ([]byte, error) {
	switch {
	case s.RawBody != nil:
		return []byte(*s.RawBody), nil
	case len(s.RequestBody) > 0:
		return s.RequestBody, nil
	case s.RequestFileName != "":
		return os.ReadFile(s.resolve(s.RequestFileName))
	}
	return nil, nil
}

// expected returns the exact response body to compare with, or nil.
func (s *Scenario) expected() ([]byte, error) {
	switch {
	case len(s.ExpectedBody) > 0:
		return s.ExpectedBody, nil
	case s.ResponseFileName != "":
		return os.ReadFile(s.resolve(s.ResponseFileName))
	}
	return nil, nil
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
