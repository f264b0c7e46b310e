// Package testutil provides helpers shared by the backend test suites.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// Envelope builds a well-formed command envelope for the given action.
func Envelope(action string, params map[string]interface{}) types.CommandEnvelope {
	if params == nil {
		params = map[string]interface{}{}
	}
	return types.CommandEnvelope{
		Action:    action,
		Params:    params,
		UUID:      uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// PostAction sends an envelope through the router and decodes the result.
// The transport contract is asserted here: every decoded envelope answers 200.
func PostAction(t *testing.T, router *gin.Engine, env types.CommandEnvelope) *types.CommandResult {
	t.Helper()

	body, err := json.Marshal(env)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/action/execute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var result types.CommandResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return &result
}

// GetJSON performs a GET against the router and decodes the JSON response.
func GetJSON(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec.Code, payload
}
