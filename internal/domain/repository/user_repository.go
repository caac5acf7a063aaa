package repository

import (
	"context"

	"sharesphere/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetBySubjectID(ctx context.Context, subjectID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error

	// EmailsBySubjectIDs resolves identity subject ids to emails in batches.
	// Missing ids are simply absent from the result map.
	EmailsBySubjectIDs(ctx context.Context, subjectIDs []string) (map[string]string, error)

	// PullDownloadedFile removes the file id from every user's
	// downloaded-files set.
	PullDownloadedFile(ctx context.Context, fileID string) error
}
