package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"concierge/internal/env"
	"concierge/internal/models"
	"concierge/internal/storage"
)

func publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Load the dataset from a source and store it as a bucket snapshot",
		Long:  `Read spots, courses and course spots from the configured CSV or XLSX source and write them as a JSON snapshot that the s3 source serves.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cfg.Source == storage.KindS3 {
				return fmt.Errorf("publish reads from csv, xlsx or postgres, not from the snapshot itself")
			}

			src, release, err := storage.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer release()
			ds, err := src.Load(ctx)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}

			if path, _ := cmd.Flags().GetString("xlsx-out"); path != "" {
				if err := storage.WriteXLSX(ds, path); err != nil {
					return fmt.Errorf("write workbook: %w", err)
				}
				log.WithField("path", path).Info("wrote workbook")
			}
			if skip, _ := cmd.Flags().GetBool("no-upload"); skip {
				return nil
			}
			return upload(ctx, cmd, cfg, ds)
		},
	}
	cmd.Flags().Bool("force", false, "replace an existing snapshot")
	cmd.Flags().Bool("no-upload", false, "skip the bucket upload")
	cmd.Flags().String("xlsx-out", "", "also write the dataset as a workbook")
	return cmd
}

func upload(ctx context.Context, cmd *cobra.Command, cfg env.Config, ds *models.Dataset) error {
	s3, err := storage.NewS3Service(cfg.Minio)
	if err != nil {
		return err
	}
	if _, err := s3.CreateBucket(ctx, cfg.Bucket, ""); err != nil {
		return fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
	}
	force, _ := cmd.Flags().GetBool("force")
	return s3.PutDataset(ctx, cfg.Bucket, cfg.DatasetName, ds, force)
}
