// Package httpx serves an http.Handler on either net/http or fasthttp.
// The fasthttp path exists for deployments that want its connection
// handling; both engines expose identical semantics to the handlers.
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"forumd/pkg/logger"
)

// Engines accepted by Serve.
const (
	EngineNetHTTP  = "nethttp"
	EngineFastHTTP = "fasthttp"
)

// Serve blocks serving h on addr until ctx is canceled, then shuts the
// server down gracefully. certFile/keyFile enable TLS when both are set.
func Serve(ctx context.Context, engine, addr string, h http.Handler, certFile, keyFile string) error {
	switch engine {
	case EngineFastHTTP:
		return serveFast(ctx, addr, h, certFile, keyFile)
	case EngineNetHTTP, "":
		return serveNet(ctx, addr, h, certFile, keyFile)
	default:
		logger.Warn("unknown_http_engine", "engine", engine)
		return serveNet(ctx, addr, h, certFile, keyFile)
	}
}

func serveNet(ctx context.Context, addr string, h http.Handler, certFile, keyFile string) error {
	srv := &http.Server{Addr: addr, Handler: h}
	errCh := make(chan error, 1)
	go func() {
		var err error
		if certFile != "" && keyFile != "" {
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err == http.ErrServerClosed {
			err = nil
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("http_shutting_down", "engine", EngineNetHTTP)
		return srv.Shutdown(sctx)
	case err := <-errCh:
		return err
	}
}

func serveFast(ctx context.Context, addr string, h http.Handler, certFile, keyFile string) error {
	srv := &fasthttp.Server{
		Handler: fasthttpadaptor.NewFastHTTPHandler(h),
		Name:    "forumd",
	}
	errCh := make(chan error, 1)
	go func() {
		if certFile != "" && keyFile != "" {
			errCh <- srv.ListenAndServeTLS(addr, certFile, keyFile)
		} else {
			errCh <- srv.ListenAndServe(addr)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("http_shutting_down", "engine", EngineFastHTTP)
		return srv.Shutdown()
	case err := <-errCh:
		return err
	}
}
