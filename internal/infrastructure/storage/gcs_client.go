package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"sharesphere/internal/domain/service"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (c *CloudStorageClient) OpenWriteStream(ctx context.Context, filename, contentType, ownerTag string) (string, io.WriteCloser, error) {
	// The object id doubles as the URL-safe handle clients use for preview,
	// so objects are named by bare UUID. The store's own chunking of the
	// bytes behind that name is opaque to us.
	objectID := uuid.New().String()

	obj := c.client.Bucket(c.bucketName).Object(objectID)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.Metadata = map[string]string{
		"filename":   filename,
		"uploadedBy": ownerTag,
	}

	return objectID, wc, nil
}

func (c *CloudStorageClient) OpenReadStream(ctx context.Context, objectID string) (io.ReadCloser, error) {
	rc, err := c.client.Bucket(c.bucketName).Object(objectID).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, service.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open read stream: %v", err)
	}

	return rc, nil
}

func (c *CloudStorageClient) GetAttrs(ctx context.Context, objectID string) (*service.BlobObject, error) {
	attrs, err := c.client.Bucket(c.bucketName).Object(objectID).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, service.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to get object attrs: %v", err)
	}

	return blobObjectFromAttrs(attrs), nil
}

func (c *CloudStorageClient) FindByFilename(ctx context.Context, filename string) (*service.BlobObject, error) {
	it := c.client.Bucket(c.bucketName).Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %v", err)
		}

		if attrs.Metadata["filename"] == filename {
			return blobObjectFromAttrs(attrs), nil
		}
	}

	return nil, service.ErrObjectNotFound
}

// Delete is not idempotent: deleting an unknown object id surfaces
// ErrObjectNotFound.
func (c *CloudStorageClient) Delete(ctx context.Context, objectID string) error {
	err := c.client.Bucket(c.bucketName).Object(objectID).Delete(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return service.ErrObjectNotFound
		}
		return fmt.Errorf("failed to delete object: %v", err)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

func blobObjectFromAttrs(attrs *storage.ObjectAttrs) *service.BlobObject {
	filename := attrs.Metadata["filename"]
	if filename == "" {
		filename = attrs.Name
	}

	return &service.BlobObject{
		ObjectID:    attrs.Name,
		Filename:    filename,
		ContentType: attrs.ContentType,
		Size:        attrs.Size,
	}
}
