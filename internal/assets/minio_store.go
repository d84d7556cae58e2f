package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"catalogstore/internal/serviceerrors"
)

// MinioStore keeps assets as objects in a single MinIO bucket. Object names
// follow the same policy as the disk store.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *MinioStore) Save(ctx context.Context, reader io.Reader, originalName string) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", serviceerrors.NewStorageError("failed to ensure bucket exists", err)
	}

	name := generateName(originalName)
	_, err := s.client.PutObject(ctx, s.bucket, name, reader, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", serviceerrors.NewStorageError("failed to upload asset", err)
	}
	return name, nil
}

func (s *MinioStore) Delete(ctx context.Context, name string) error {
	// RemoveObject does not report missing objects, so check first to keep
	// the same contract as the disk store.
	if _, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{}); err != nil {
		return serviceerrors.NewStorageError(fmt.Sprintf("failed to stat asset %s", name), err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return serviceerrors.NewStorageError(fmt.Sprintf("failed to delete asset %s", name), err)
	}
	return nil
}

func (s *MinioStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return false, nil
		}
		return false, serviceerrors.NewStorageError(fmt.Sprintf("failed to stat asset %s", name), err)
	}
	return true, nil
}

func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, serviceerrors.NewStorageError(fmt.Sprintf("failed to open asset %s", name), err)
	}
	return obj, nil
}

func (s *MinioStore) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, serviceerrors.NewStorageError("failed to list bucket", obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}
