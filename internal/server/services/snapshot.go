package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sc "github.com/decolog/decolog/internal/server/config"
	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

type SnapshotService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewSnapshotService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *SnapshotService {
	return &SnapshotService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// snapshotStorageKey scopes objects per device so a device can only ever
// confirm keys under its own prefix.
func snapshotStorageKey(deviceID string) string {
	return fmt.Sprintf("devices/%s/%v.json", deviceID, uuid.New())
}

func (s *SnapshotService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// RequestUpload presigns a PUT for a fresh per-device storage key and
// records the pending upload slot. The device uploads its log to the
// returned URL and then confirms the key.
func (s *SnapshotService) RequestUpload(ctx context.Context, deviceID string) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := snapshotStorageKey(deviceID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", "", err
	}

	snap := &models.Snapshot{DeviceID: deviceID, StorageKey: key, Status: models.SnapshotPending}
	if err := s.repomanager.Snapshots(s.db).Create(ctx, snap); err != nil {
		return "", "", fmt.Errorf("error recording snapshot slot: %v", err)
	}

	return req.URL, key, nil
}

// Confirm flips the device's pending slot to uploaded.
// shared.ErrNotFound when the key does not belong to the device.
func (s *SnapshotService) Confirm(ctx context.Context, deviceID string, key string) error {
	return s.repomanager.Snapshots(s.db).MarkUploaded(ctx, deviceID, key)
}
