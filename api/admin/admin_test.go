// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/log"
)

func marshalBody(t *testing.T, body any) []byte {
	if body == nil {
		return nil
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return data
}

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		body             any
		expectedStatus   int
		expectedLevel    string
		expectedErrorMsg string
	}{
		{"set level to debug", http.MethodPost, map[string]string{"level": "debug"}, http.StatusOK, "debug", ""},
		{"set level to trace", http.MethodPost, map[string]string{"level": "trace"}, http.StatusOK, "trace", ""},
		{"invalid level", http.MethodPost, map[string]string{"level": "invalid_body"}, http.StatusBadRequest, "", "Invalid verbosity level"},
		{"unknown field", http.MethodPost, map[string]string{"lvl": "debug"}, http.StatusBadRequest, "", ""},
		{"get current level", http.MethodGet, nil, http.StatusOK, "info", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var level slog.LevelVar
			level.Set(log.LevelInfo)

			req := httptest.NewRequest(tt.method, "/admin/loglevel", bytes.NewReader(marshalBody(t, tt.body)))
			rr := httptest.NewRecorder()
			New(&level, &atomic.Bool{}).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedLevel != "" {
				var res LogLevelResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
				assert.Equal(t, tt.expectedLevel, res.CurrentLevel)
				assert.Equal(t, tt.expectedLevel, log.LevelString(level.Level()))
				return
			}
			if tt.expectedErrorMsg != "" {
				assert.Equal(t, tt.expectedErrorMsg, strings.Trim(rr.Body.String(), "\n"))
			}
			assert.Equal(t, log.LevelInfo, level.Level())
		})
	}
}

func TestAPILogsHandler(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		startValue       bool
		requestBody      bool
		expectedEndValue bool
	}{
		{"enable logs", http.MethodPost, false, true, true},
		{"disable logs", http.MethodPost, true, false, false},
		{"get current value", http.MethodGet, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := &atomic.Bool{}
			enabled.Store(tt.startValue)

			var body any
			if tt.method == http.MethodPost {
				body = LogStatus{Enabled: tt.requestBody}
			}
			req := httptest.NewRequest(tt.method, "/admin/apilogs", bytes.NewReader(marshalBody(t, body)))
			rr := httptest.NewRecorder()
			var level slog.LevelVar
			New(&level, enabled).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			var res LogStatus
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
			assert.Equal(t, tt.expectedEndValue, res.Enabled)
			assert.Equal(t, tt.expectedEndValue, enabled.Load())
		})
	}
}
