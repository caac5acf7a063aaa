package service

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when no object exists for the given id or
// filename.
var ErrObjectNotFound = errors.New("blob object not found")

// BlobObject describes a stored object as the blob store sees it,
// independent of the file catalog.
type BlobObject struct {
	ObjectID    string
	Filename    string
	ContentType string
	Size        int64
}

// BlobStorageService wraps an external chunked object store. Writes are
// open-ended streams: the object id is handed out up front and the bytes
// are durable once the sink is closed.
type BlobStorageService interface {
	OpenWriteStream(ctx context.Context, filename, contentType, ownerTag string) (string, io.WriteCloser, error)
	OpenReadStream(ctx context.Context, objectID string) (io.ReadCloser, error)
	GetAttrs(ctx context.Context, objectID string) (*BlobObject, error)
	FindByFilename(ctx context.Context, filename string) (*BlobObject, error)
	Delete(ctx context.Context, objectID string) error
	Close() error
}
