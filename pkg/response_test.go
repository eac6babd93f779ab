package pkg

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "abc"}, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.Success)
	assert.Equal(t, "created", resp.Message)
	assert.Equal(t, map[string]any{"id": "abc"}, resp.Data)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: no such video", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: invalid credentials", ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: not yours", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: username taken", ErrAlreadyExists), http.StatusConflict},
		{fmt.Errorf("%w: missing title", ErrBadRequest), http.StatusBadRequest},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		rec := httptest.NewRecorder()
		Error(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %q", tc.err)

		var resp APIErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, tc.err.Error(), resp.Message)
		assert.Equal(t, []string{tc.err.Error()}, resp.Errors)
	}
}

func TestErrorStackHiddenInProduction(t *testing.T) {
	SetProduction(true)
	defer SetProduction(false)

	rec := httptest.NewRecorder()
	Error(rec, ErrInternal)

	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Stack)
}

func TestErrorStackIncludedInDevelopment(t *testing.T) {
	SetProduction(false)

	rec := httptest.NewRecorder()
	Error(rec, ErrInternal)

	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Stack)
}
