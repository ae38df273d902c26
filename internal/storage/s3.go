package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"concierge/internal/env"
	"concierge/internal/keys"
	"concierge/internal/models"
)

// ErrSnapshotExists is returned when a snapshot would be overwritten without force.
var ErrSnapshotExists = errors.New("snapshot already exists")

// S3Service is a client for S3-compatible storage.
type S3Service struct {
	client *minio.Client
}

// NewS3Service connects to the MinIO server described by cfg.
func NewS3Service(cfg env.MinioConfig) (*S3Service, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing one or more required settings: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.WithField("endpoint", cfg.Endpoint).Debug("connected to MinIO")
	return &S3Service{client: minioClient}, nil
}

func (s *S3Service) CreateBucket(ctx context.Context, bucketName string, location string) (bool, error) {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// PutDataset stores ds as the named snapshot. An existing snapshot is only
// replaced when force is set.
func (s *S3Service) PutDataset(ctx context.Context, bucketName, name string, ds *models.Dataset, force bool) error {
	objectKey := keys.Dataset(name)

	if !force {
		_, err := s.client.StatObject(ctx, bucketName, objectKey, minio.StatObjectOptions{})
		if err == nil {
			return fmt.Errorf("%w: %s/%s", ErrSnapshotExists, bucketName, objectKey)
		}
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			return fmt.Errorf("failed to check for existing object: %w", err)
		}
	}

	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset to JSON: %w", err)
	}

	_, err = s.client.PutObject(
		ctx,
		bucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object in S3: %w", err)
	}

	log.WithFields(log.Fields{
		"bucket":  bucketName,
		"key":     objectKey,
		"spots":   len(ds.Locations),
		"courses": len(ds.Courses),
	}).Info("stored dataset snapshot")
	return nil
}

// GetDataset retrieves the named snapshot.
func (s *S3Service) GetDataset(ctx context.Context, bucketName, name string) (*models.Dataset, error) {
	objectKey := keys.Dataset(name)
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	var ds models.Dataset
	if err := json.NewDecoder(object).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from stream: %w", err)
	}
	return &ds, nil
}

// S3 is a Source reading one snapshot from a bucket.
type S3 struct {
	service *S3Service
	bucket  string
	name    string
}

func NewS3(service *S3Service, bucket, name string) *S3 {
	return &S3{service: service, bucket: bucket, name: name}
}

func (s *S3) Load(ctx context.Context) (*models.Dataset, error) {
	return s.service.GetDataset(ctx, s.bucket, s.name)
}
