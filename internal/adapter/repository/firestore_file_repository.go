package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
	"sharesphere/pkg/logger"
)

type firestoreFileRepository struct {
	client *firestore.Client
}

func NewFirestoreFileRepository(client *firestore.Client) repository.FileRepository {
	return &firestoreFileRepository{
		client: client,
	}
}

func (r *firestoreFileRepository) Create(ctx context.Context, file *entity.File) error {
	_, err := r.client.Collection("files").Doc(file.ID).Set(ctx, file)
	return err
}

func (r *firestoreFileRepository) GetByID(ctx context.Context, id string) (*entity.File, error) {
	doc, err := r.client.Collection("files").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var file entity.File
	if err := doc.DataTo(&file); err != nil {
		return nil, err
	}

	return &file, nil
}

func (r *firestoreFileRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.File, error) {
	files := make([]*entity.File, 0, len(ids))
	for _, id := range ids {
		file, err := r.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			// Stale reference in an uploaded-files list; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func (r *firestoreFileRepository) Find(ctx context.Context, filter repository.ListFilter) ([]*entity.File, error) {
	// Equality and range filters run server-side; ordering happens in the
	// usecase to avoid composite index requirements.
	query := r.client.Collection("files").Query
	if filter.FileType != "" {
		query = query.Where("fileType", "==", filter.FileType)
	}
	if filter.MinSize > 0 {
		query = query.Where("size", ">=", filter.MinSize)
	}
	if filter.MaxSize > 0 {
		query = query.Where("size", "<=", filter.MaxSize)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	files := []*entity.File{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var file entity.File
		if err := doc.DataTo(&file); err != nil {
			logger.Warn("Skipping malformed file document %s: %v", doc.Ref.ID, err)
			continue
		}
		files = append(files, &file)
	}

	return files, nil
}

func (r *firestoreFileRepository) IncrementLikes(ctx context.Context, id string) (*entity.File, error) {
	docRef := r.client.Collection("files").Doc(id)
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.Increment(1)},
	})
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *firestoreFileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("files").Doc(id).Delete(ctx)
	return err
}
