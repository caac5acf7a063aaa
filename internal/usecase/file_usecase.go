package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
	"sharesphere/internal/domain/service"
	"sharesphere/pkg/errors"
	"sharesphere/pkg/logger"
)

// Content type prefixes the preview endpoint will stream inline.
var previewableTypes = []string{"image/", "video/", "audio/", "text/", "application/pdf"}

type FileUseCase struct {
	fileRepo   repository.FileRepository
	userRepo   repository.UserRepository
	ledgerRepo repository.LedgerRepository
	blobStore  service.BlobStorageService
}

func NewFileUseCase(
	fileRepo repository.FileRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	blobStore service.BlobStorageService,
) *FileUseCase {
	return &FileUseCase{
		fileRepo:   fileRepo,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		blobStore:  blobStore,
	}
}

type UploadFileInput struct {
	Filename    string
	ContentType string
	Title       string
	Description string
	Size        int64
	Body        io.Reader
}

// Upload streams the payload into the blob store, records the metadata and
// rewards the uploader. The steps after the blob write are not one
// transaction: a reward that fails to apply leaves the file in place.
func (uc *FileUseCase) Upload(ctx context.Context, user *entity.User, input UploadFileInput) (*entity.File, int, error) {
	objectID, sink, err := uc.blobStore.OpenWriteStream(ctx, input.Filename, input.ContentType, user.FirebaseUID)
	if err != nil {
		return nil, 0, errors.Internal("Failed to open upload stream", err)
	}

	if _, err := io.Copy(sink, input.Body); err != nil {
		sink.Close()
		return nil, 0, errors.Internal("Failed to write file to storage", err)
	}
	// Close completes the write; only now are the bytes durable.
	if err := sink.Close(); err != nil {
		return nil, 0, errors.Internal("Failed to persist file", err)
	}

	title := input.Title
	if title == "" {
		title = input.Filename
	}

	file := &entity.File{
		ID:          uuid.New().String(),
		ObjectID:    objectID,
		FileName:    input.Filename,
		Title:       title,
		Description: input.Description,
		Size:        input.Size,
		FileType:    input.ContentType,
		UploadedBy:  user.FirebaseUID,
		UploadDate:  time.Now(),
		Downloads:   []string{},
	}

	if err := uc.fileRepo.Create(ctx, file); err != nil {
		return nil, 0, errors.Internal("Failed to save file metadata", err)
	}

	user.UploadedFiles = append(user.UploadedFiles, file.ID)
	user.Credits += entity.UploadReward
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Error("Upload reward not applied for user %s, file %s: %v", user.ID, file.ID, err)
		return nil, 0, errors.Internal("Failed to award upload credits", err)
	}

	entry := &entity.LedgerEntry{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Amount:      entity.UploadReward,
		Type:        entity.LedgerTypeCredit,
		Description: fmt.Sprintf("Earned credits for uploading %q", input.Filename),
		CreatedAt:   time.Now(),
	}
	if err := uc.ledgerRepo.Append(ctx, entry); err != nil {
		logger.Error("Ledger append failed for upload of file %s: %v", file.ID, err)
		return nil, 0, errors.Internal("Failed to record ledger entry", err)
	}

	return file, user.Credits, nil
}

type ListFilesInput struct {
	FileType string
	MinSize  int64
	MaxSize  int64
	SortBy   string
}

// FileListItem is a catalog record with the owner's subject id resolved to
// an email for display.
type FileListItem struct {
	entity.File
	UploadedBy string `json:"uploaded_by"`
}

func (uc *FileUseCase) List(ctx context.Context, input ListFilesInput) ([]FileListItem, error) {
	files, err := uc.fileRepo.Find(ctx, repository.ListFilter{
		FileType: input.FileType,
		MinSize:  input.MinSize,
		MaxSize:  input.MaxSize,
	})
	if err != nil {
		return nil, errors.Internal("Failed to fetch files", err)
	}

	sortFiles(files, input.SortBy)

	subjectIDs := make([]string, 0, len(files))
	seen := map[string]bool{}
	for _, file := range files {
		if file.UploadedBy != "" && !seen[file.UploadedBy] {
			seen[file.UploadedBy] = true
			subjectIDs = append(subjectIDs, file.UploadedBy)
		}
	}

	emails, err := uc.userRepo.EmailsBySubjectIDs(ctx, subjectIDs)
	if err != nil {
		return nil, errors.Internal("Failed to resolve file owners", err)
	}

	items := make([]FileListItem, 0, len(files))
	for _, file := range files {
		owner := emails[file.UploadedBy]
		if owner == "" {
			owner = "Unknown"
		}
		items = append(items, FileListItem{File: *file, UploadedBy: owner})
	}

	return items, nil
}

func sortFiles(files []*entity.File, sortBy string) {
	switch sortBy {
	case "oldest":
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].UploadDate.Before(files[j].UploadDate)
		})
	case "most_downloads":
		sort.SliceStable(files, func(i, j int) bool {
			return len(files[i].Downloads) > len(files[j].Downloads)
		})
	case "most_likes":
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Likes > files[j].Likes
		})
	default: // newest
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].UploadDate.After(files[j].UploadDate)
		})
	}
}

// Preview fetches attrs straight from the blob store, bypassing the file
// catalog, and opens an inline stream when the stored content type is
// previewable.
func (uc *FileUseCase) Preview(ctx context.Context, objectID string) (*service.BlobObject, io.ReadCloser, error) {
	if _, err := uuid.Parse(objectID); err != nil {
		return nil, nil, errors.BadRequest("Invalid file ID", err)
	}

	attrs, err := uc.blobStore.GetAttrs(ctx, objectID)
	if err != nil {
		if stderrors.Is(err, service.ErrObjectNotFound) {
			return nil, nil, errors.NotFound("File", err)
		}
		return nil, nil, errors.Internal("Failed to fetch file metadata", err)
	}

	if !isPreviewable(attrs.ContentType) {
		return nil, nil, errors.UnsupportedMediaType("File type not supported for preview", nil)
	}

	rc, err := uc.blobStore.OpenReadStream(ctx, objectID)
	if err != nil {
		if stderrors.Is(err, service.ErrObjectNotFound) {
			return nil, nil, errors.NotFound("File", err)
		}
		return nil, nil, errors.Internal("Failed to open file stream", err)
	}

	return attrs, rc, nil
}

func isPreviewable(contentType string) bool {
	for _, prefix := range previewableTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// FetchByName is the raw retrieval path keyed by stored filename, fully
// independent of the file catalog.
func (uc *FileUseCase) FetchByName(ctx context.Context, filename string) (*service.BlobObject, io.ReadCloser, error) {
	attrs, err := uc.blobStore.FindByFilename(ctx, filename)
	if err != nil {
		if stderrors.Is(err, service.ErrObjectNotFound) {
			return nil, nil, errors.NotFound("File", err)
		}
		return nil, nil, errors.Internal("Failed to look up file", err)
	}

	rc, err := uc.blobStore.OpenReadStream(ctx, attrs.ObjectID)
	if err != nil {
		if stderrors.Is(err, service.ErrObjectNotFound) {
			return nil, nil, errors.NotFound("File", err)
		}
		return nil, nil, errors.Internal("Failed to open file stream", err)
	}

	return attrs, rc, nil
}

func (uc *FileUseCase) Like(ctx context.Context, fileID string) (*entity.File, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, errors.BadRequest("Invalid file ID", err)
	}

	file, err := uc.fileRepo.IncrementLikes(ctx, fileID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFound("File", err)
		}
		return nil, errors.Internal("Failed to like file", err)
	}

	return file, nil
}

// Delete removes the blob first, then the metadata, then purges the file id
// from every user's downloaded set. A failed blob delete leaves the
// metadata record intact; there is no compensating rollback.
func (uc *FileUseCase) Delete(ctx context.Context, fileID, subjectID string) error {
	if _, err := uuid.Parse(fileID); err != nil {
		return errors.BadRequest("Invalid file ID", err)
	}

	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NotFound("File", err)
		}
		return errors.Internal("Failed to fetch file", err)
	}

	if file.UploadedBy != subjectID {
		return errors.Forbidden("Only the uploader can delete this file", nil)
	}

	if err := uc.blobStore.Delete(ctx, file.StorageObjectID()); err != nil {
		return errors.Internal("Failed to delete file from storage", err)
	}

	if err := uc.fileRepo.Delete(ctx, fileID); err != nil {
		return errors.Internal("Failed to delete file metadata", err)
	}

	if err := uc.userRepo.PullDownloadedFile(ctx, fileID); err != nil {
		return errors.Internal("Failed to purge file from download lists", err)
	}

	return nil
}
