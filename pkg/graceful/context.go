package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Context creates a context that is canceled when an OS interrupt signal is received.
func Context(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.WithField("signal", sig).Info("received termination signal, starting graceful shutdown")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
