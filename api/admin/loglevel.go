// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/api/restutil"
	"github.com/vechain/thor-staking/log"
)

type LogLevelRequest struct {
	Level string `json:"level"`
}

type LogLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

type logLevel struct {
	level *slog.LevelVar
}

func newLogLevel(level *slog.LevelVar) *logLevel {
	return &logLevel{level: level}
}

func (l *logLevel) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").
		Methods(http.MethodGet).
		Name("get-log-level").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleGet))

	sub.Path("").
		Methods(http.MethodPost).
		Name("post-log-level").
		HandlerFunc(restutil.WrapHandlerFunc(l.handlePost))
}

func (l *logLevel) handleGet(w http.ResponseWriter, _ *http.Request) error {
	return restutil.WriteJSON(w, LogLevelResponse{
		CurrentLevel: log.LevelString(l.level.Level()),
	})
}

func (l *logLevel) handlePost(w http.ResponseWriter, r *http.Request) error {
	var req LogLevelRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "Invalid request body"))
	}

	switch req.Level {
	case "trace":
		l.level.Set(log.LevelTrace)
	case "debug":
		l.level.Set(log.LevelDebug)
	case "info":
		l.level.Set(log.LevelInfo)
	case "warn":
		l.level.Set(log.LevelWarn)
	case "error":
		l.level.Set(log.LevelError)
	default:
		return restutil.BadRequest(errors.New("Invalid verbosity level"))
	}

	return restutil.WriteJSON(w, LogLevelResponse{
		CurrentLevel: log.LevelString(l.level.Level()),
	})
}
