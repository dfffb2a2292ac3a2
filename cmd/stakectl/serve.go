// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-staking/api"
	"github.com/vechain/thor-staking/api/admin"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/metrics"
)

var serveCommand = cli.Command{
	Name:  "serve",
	Usage: "serve the read only vault API",
	Flags: []cli.Flag{
		apiAddrFlag,
		apiCorsFlag,
		apiTimeoutFlag,
		enableAPILogsFlag,
		apiSlowQueriesThresholdFlag,
		apiLog5xxErrorsFlag,
		adminAddrFlag,
		pprofFlag,
		enableMetricsFlag,
	},
	Action: serveAction,
}

func serveAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		defer func() { log.Info("exited") }()

		if e.cfg.API.EnableMetrics {
			metrics.InitializePrometheusMetrics()
		}

		enableLogs := &atomic.Bool{}
		enableLogs.Store(e.cfg.API.EnableLogs)
		handler := api.New(e.staking, api.Options{
			AllowedOrigins:       e.cfg.API.Cors,
			PprofOn:              e.cfg.API.Pprof,
			EnableReqLogger:      enableLogs,
			SlowQueriesThreshold: e.cfg.API.SlowQueriesThreshold(),
			Log5xxErrors:         e.cfg.API.Log5xxErrors,
			EnableMetrics:        e.cfg.API.EnableMetrics,
		})

		exitCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		url, srv, err := startAPIServer(exitCtx, e.cfg.API.Addr, handleAPITimeout(handler, e.cfg.API.Timeout()))
		if err != nil {
			return err
		}
		log.Info("API server started", "url", url, "data-dir", e.cfg.DataDir)

		if e.cfg.API.AdminAddr != "" {
			adminURL, adminSrv, err := startAPIServer(exitCtx, e.cfg.API.AdminAddr, admin.New(e.logLevel, enableLogs))
			if err != nil {
				stop()
				srv.Wait()
				return err
			}
			log.Info("admin server started", "url", adminURL+"admin")
			defer adminSrv.Wait()
		}

		return srv.Wait()
	})
}

func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	if timeout == 0 {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

// startAPIServer serves handler on addr until ctx is done. Wait on the returned group for the
// server to stop.
func startAPIServer(ctx context.Context, addr string, handler http.Handler) (string, *errgroup.Group, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var group errgroup.Group
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		log.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", &group, nil
}
