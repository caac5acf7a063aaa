package repository

import (
	"context"

	"sharesphere/internal/domain/entity"
)

// ListFilter narrows a catalog listing. Zero values mean "no constraint";
// size bounds are inclusive.
type ListFilter struct {
	FileType string
	MinSize  int64
	MaxSize  int64
}

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	GetByID(ctx context.Context, id string) (*entity.File, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.File, error)
	Find(ctx context.Context, filter ListFilter) ([]*entity.File, error)
	IncrementLikes(ctx context.Context, id string) (*entity.File, error)
	Delete(ctx context.Context, id string) error
}
