package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"concierge/internal/httpapi"
	"concierge/pkg/graceful"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the concierge HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := graceful.Context(context.Background())
			defer cancel()

			addr, _ := cmd.Flags().GetString("addr")
			svc, release, err := newService(ctx, cfg)
			if err != nil {
				return err
			}
			defer release()

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewServer(svc, cfg.RequestTimeout).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
				defer stop()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.WithError(err).Error("http shutdown failed")
				}
			}()

			log.WithField("addr", addr).Info("serving concierge api")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", cfg.HTTPAddr, "listen address")
	return cmd
}
