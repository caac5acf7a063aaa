package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
	"sharesphere/internal/domain/service"
	"sharesphere/pkg/errors"
)

type DownloadUseCase struct {
	userRepo     repository.UserRepository
	fileRepo     repository.FileRepository
	downloadRepo repository.DownloadRepository
	blobStore    service.BlobStorageService
}

func NewDownloadUseCase(
	userRepo repository.UserRepository,
	fileRepo repository.FileRepository,
	downloadRepo repository.DownloadRepository,
	blobStore service.BlobStorageService,
) *DownloadUseCase {
	return &DownloadUseCase{
		userRepo:     userRepo,
		fileRepo:     fileRepo,
		downloadRepo: downloadRepo,
		blobStore:    blobStore,
	}
}

// Download charges for the first download of a file and streams the bytes.
// A file already in the user's downloaded set is free to fetch again and
// causes no writes at all. The user is re-looked-up by subject id here
// rather than taken from the request context.
func (uc *DownloadUseCase) Download(ctx context.Context, subjectID, fileID string) (*entity.File, io.ReadCloser, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, nil, errors.BadRequest("Invalid file ID", err)
	}

	user, err := uc.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, nil, errors.NotFound("User", err)
		}
		return nil, nil, errors.Internal("Failed to fetch user", err)
	}

	if user.Credits < entity.DownloadCost {
		return nil, nil, errors.Forbidden("Insufficient credits to download this file", nil)
	}

	var file *entity.File
	if !user.HasDownloaded(fileID) {
		entry := &entity.LedgerEntry{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			Amount:      -entity.DownloadCost,
			Type:        entity.LedgerTypeDebit,
			Description: fmt.Sprintf("Downloaded file ID: %s", fileID),
			CreatedAt:   time.Now(),
		}

		file, err = uc.downloadRepo.CommitFirstDownload(ctx, user.ID, fileID, entry)
		if err != nil {
			switch {
			case stderrors.Is(err, repository.ErrNotFound):
				return nil, nil, errors.NotFound("File", err)
			case stderrors.Is(err, repository.ErrInsufficientCredits):
				return nil, nil, errors.Forbidden("Insufficient credits to download this file", err)
			default:
				return nil, nil, errors.Internal("Failed to complete download transaction", err)
			}
		}
	} else {
		file, err = uc.fileRepo.GetByID(ctx, fileID)
		if err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				return nil, nil, errors.NotFound("File", err)
			}
			return nil, nil, errors.Internal("Failed to fetch file", err)
		}
	}

	rc, err := uc.blobStore.OpenReadStream(ctx, file.StorageObjectID())
	if err != nil {
		if stderrors.Is(err, service.ErrObjectNotFound) {
			return nil, nil, errors.NotFound("File content", err)
		}
		return nil, nil, errors.Internal("Failed to open download stream", err)
	}

	return file, rc, nil
}
