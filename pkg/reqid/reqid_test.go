package reqid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/helmet-store/pkg/reqid"
)

func serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, string, string) {
	t.Helper()
	var gotID, gotTx string
	h := reqid.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = reqid.FromCtx(r.Context())
		gotTx = reqid.TransactionFromCtx(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, gotID, gotTx
}

func TestMiddlewareGeneratesID(t *testing.T) {
	rec, id, tx := serve(t, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Header().Get(reqid.Header))
	assert.Empty(t, tx)
}

func TestMiddlewareHonoursUpstreamIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(reqid.Header, "abc123")
	req.Header.Set("transaction_id", "tx-42")

	rec, id, tx := serve(t, req)

	assert.Equal(t, "abc123", id)
	assert.Equal(t, "tx-42", tx)
	assert.Equal(t, "tx-42", rec.Header().Get("X-Transaction-ID"))
}

func TestFromCtxEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, reqid.FromCtx(req.Context()))
	assert.Empty(t, reqid.TransactionFromCtx(req.Context()))
}
