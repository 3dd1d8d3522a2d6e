package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"deal_analyzer/pkg/logx"
)

const serverReadHeaderTimeout = 5 * time.Second

// Serve runs handler on listenAddress until ctx is done, then shuts the server
// down and waits for in-flight requests.
func Serve(ctx context.Context, name, listenAddress string, handler http.Handler) error {
	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              listenAddress,
		Handler:           handler,
		ReadHeaderTimeout: serverReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)

		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", slog.String("server", name), logx.Error(err))
		}
	}()

	logger(ctx).Info(name+" server started", slog.String("address", listenAddress))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	<-shutdownDone

	logger(ctx).Info(name + " server stopped")

	return nil
}
