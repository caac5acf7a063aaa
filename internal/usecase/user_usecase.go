package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
	"sharesphere/pkg/errors"
	"sharesphere/pkg/logger"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	fileRepo   repository.FileRepository
	ledgerRepo repository.LedgerRepository
}

func NewUserUseCase(userRepo repository.UserRepository, fileRepo repository.FileRepository, ledgerRepo repository.LedgerRepository) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		fileRepo:   fileRepo,
		ledgerRepo: ledgerRepo,
	}
}

// ResolveIdentityInput carries the claims of a verified identity assertion.
type ResolveIdentityInput struct {
	SubjectID string
	Email     string
	Name      string
	Picture   string
}

// ResolveIdentity finds the local user for a verified subject id, creating
// one with the starting balance on first sight.
func (uc *UserUseCase) ResolveIdentity(ctx context.Context, input ResolveIdentityInput) (*entity.User, error) {
	if input.SubjectID == "" {
		return nil, errors.Unauthorized("No subject id found in token", nil)
	}

	user, err := uc.userRepo.GetBySubjectID(ctx, input.SubjectID)
	if err == nil {
		return user, nil
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.Internal("Failed to look up user", err)
	}

	now := time.Now()
	user = &entity.User{
		ID:              uuid.New().String(),
		FirebaseUID:     input.SubjectID,
		Email:           input.Email,
		Name:            input.Name,
		ProfilePic:      input.Picture,
		Credits:         entity.StartingCredits,
		UploadedFiles:   []string{},
		DownloadedFiles: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to provision user", err)
	}

	logger.Info("Provisioned new user %s", user.Email)
	return user, nil
}

func (uc *UserUseCase) GetCredits(ctx context.Context, subjectID string) (int, error) {
	user, err := uc.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return 0, errors.NotFound("User", err)
		}
		return 0, errors.Internal("Failed to fetch user credits", err)
	}

	return user.Credits, nil
}

func (uc *UserUseCase) GetMyUploads(ctx context.Context, subjectID string) ([]*entity.File, error) {
	user, err := uc.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to fetch user", err)
	}

	files, err := uc.fileRepo.GetByIDs(ctx, user.UploadedFiles)
	if err != nil {
		return nil, errors.Internal("Failed to fetch uploaded files", err)
	}

	return files, nil
}

func (uc *UserUseCase) GetLedgerHistory(ctx context.Context, subjectID string) ([]entity.LedgerEntry, error) {
	user, err := uc.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to fetch user", err)
	}

	entries, err := uc.ledgerRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to fetch ledger entries", err)
	}

	return entries, nil
}
