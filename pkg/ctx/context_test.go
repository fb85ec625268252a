package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	appctx "github.com/shashiranjanraj/helmet-store/pkg/ctx"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"count": 1})
		if c.StatusCode() != http.StatusOK {
			t.Errorf("expected recorded status 200, got %d", c.StatusCode())
		}
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestParamUint(t *testing.T) {
	cases := map[string]bool{"4": true, "0": false, "-1": false, "abc": false, "4.5": false}

	for raw, valid := range cases {
		mux := chi.NewRouter()
		mux.Get("/delete/{id}", appctx.Wrap(func(c *appctx.Context) {
			id, err := c.ParamUint("id")
			if valid {
				assert.NoError(t, err, raw)
				assert.EqualValues(t, 4, id)
			} else {
				assert.Error(t, err, raw)
			}
		}))
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/delete/"+raw, nil))
	}
}

func TestBindJSONDoesNotWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))

	appctx.Wrap(func(c *appctx.Context) {
		var in struct {
			Name string `json:"name"`
		}
		assert.Error(t, c.BindJSON(&in))
		assert.Zero(t, c.StatusCode())
	})(rec, req)

	assert.Empty(t, rec.Body.String())
}

func TestErrorResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) { c.NotFound("Helmet not found") })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) { c.BadRequest("bad", nil) })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) { c.InternalError() })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
