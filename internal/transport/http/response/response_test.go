package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minyoungbaek/eventory/internal/domain"
)

func doErr(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "req-123")

	Err(w, r, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErr_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.ErrValidation("bad input"), http.StatusBadRequest, "validation_error"},
		{"not_found", domain.ErrNotFound("missing"), http.StatusNotFound, "not_found"},
		{"forbidden", domain.ErrForbidden("nope"), http.StatusForbidden, "forbidden"},
		{"conflict", domain.ErrConflict("dup"), http.StatusConflict, "conflict"},
		{"capacity_full", domain.ErrCapacityFull("full"), http.StatusConflict, "capacity_full"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doErr(t, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, "req-123", body.Error.RequestID)
		})
	}
}

func TestErr_UnknownErrorStays500(t *testing.T) {
	w, body := doErr(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", body.Error.Code)
	// details must not leak to the client
	assert.Equal(t, "internal error", body.Error.Message)
}

func TestData_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	Data(w, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"data":{"id":"abc"}}`, w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestErr_ValidationMeta(t *testing.T) {
	_, body := doErr(t, domain.ErrValidationMeta("invalid body", map[string]string{
		"club_id": "must be a valid uuid",
	}))
	assert.Equal(t, "must be a valid uuid", body.Error.Meta["club_id"])
}
