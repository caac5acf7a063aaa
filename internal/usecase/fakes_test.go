package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
	"sharesphere/internal/domain/service"
)

// In-memory doubles for the Firestore repositories and the blob store.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	u := *user
	f.users[user.ID] = &u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (f *fakeUserRepo) GetBySubjectID(ctx context.Context, subjectID string) (*entity.User, error) {
	for _, user := range f.users {
		if user.FirebaseUID == subjectID {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	u := *user
	f.users[user.ID] = &u
	return nil
}

func (f *fakeUserRepo) EmailsBySubjectIDs(ctx context.Context, subjectIDs []string) (map[string]string, error) {
	emails := map[string]string{}
	for _, id := range subjectIDs {
		for _, user := range f.users {
			if user.FirebaseUID == id {
				emails[id] = user.Email
			}
		}
	}
	return emails, nil
}

func (f *fakeUserRepo) PullDownloadedFile(ctx context.Context, fileID string) error {
	for _, user := range f.users {
		kept := user.DownloadedFiles[:0]
		for _, id := range user.DownloadedFiles {
			if id != fileID {
				kept = append(kept, id)
			}
		}
		user.DownloadedFiles = kept
	}
	return nil
}

type fakeFileRepo struct {
	files map[string]*entity.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[string]*entity.File{}}
}

func (f *fakeFileRepo) Create(ctx context.Context, file *entity.File) error {
	fl := *file
	f.files[file.ID] = &fl
	return nil
}

func (f *fakeFileRepo) GetByID(ctx context.Context, id string) (*entity.File, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fl := *file
	return &fl, nil
}

func (f *fakeFileRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.File, error) {
	files := []*entity.File{}
	for _, id := range ids {
		if file, ok := f.files[id]; ok {
			fl := *file
			files = append(files, &fl)
		}
	}
	return files, nil
}

func (f *fakeFileRepo) Find(ctx context.Context, filter repository.ListFilter) ([]*entity.File, error) {
	files := []*entity.File{}
	for _, file := range f.files {
		if filter.FileType != "" && file.FileType != filter.FileType {
			continue
		}
		if filter.MinSize > 0 && file.Size < filter.MinSize {
			continue
		}
		if filter.MaxSize > 0 && file.Size > filter.MaxSize {
			continue
		}
		fl := *file
		files = append(files, &fl)
	}
	return files, nil
}

func (f *fakeFileRepo) IncrementLikes(ctx context.Context, id string) (*entity.File, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	file.Likes++
	fl := *file
	return &fl, nil
}

func (f *fakeFileRepo) Delete(ctx context.Context, id string) error {
	delete(f.files, id)
	return nil
}

type fakeLedgerRepo struct {
	entries []entity.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (f *fakeLedgerRepo) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedgerRepo) GetByUserID(ctx context.Context, userID string) ([]entity.LedgerEntry, error) {
	entries := []entity.LedgerEntry{}
	for _, entry := range f.entries {
		if entry.UserID == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// fakeDownloadRepo commits against the same backing maps as the other
// fakes, mirroring the Firestore transaction's semantics.
type fakeDownloadRepo struct {
	users  *fakeUserRepo
	files  *fakeFileRepo
	ledger *fakeLedgerRepo
}

func (f *fakeDownloadRepo) CommitFirstDownload(ctx context.Context, userID, fileID string, entry *entity.LedgerEntry) (*entity.File, error) {
	user, ok := f.users.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	file, ok := f.files.files[fileID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if user.HasDownloaded(fileID) {
		fl := *file
		return &fl, nil
	}

	if user.Credits < entity.DownloadCost {
		return nil, repository.ErrInsufficientCredits
	}

	if !file.DownloadedBy(user.ID) {
		file.Downloads = append(file.Downloads, user.ID)
	}

	user.Credits -= entity.DownloadCost
	user.DownloadedFiles = append(user.DownloadedFiles, fileID)
	f.ledger.entries = append(f.ledger.entries, *entry)

	fl := *file
	return &fl, nil
}

type blobEntry struct {
	attrs service.BlobObject
	data  []byte
}

type fakeBlobStore struct {
	objects map[string]*blobEntry
	nextID  int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string]*blobEntry{}}
}

type fakeSink struct {
	buf    bytes.Buffer
	commit func([]byte)
}

func (s *fakeSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

func (s *fakeSink) Close() error {
	s.commit(s.buf.Bytes())
	return nil
}

func (f *fakeBlobStore) OpenWriteStream(ctx context.Context, filename, contentType, ownerTag string) (string, io.WriteCloser, error) {
	f.nextID++
	objectID := fmt.Sprintf("00000000-0000-0000-0000-%012d", f.nextID)

	sink := &fakeSink{commit: func(data []byte) {
		f.objects[objectID] = &blobEntry{
			attrs: service.BlobObject{
				ObjectID:    objectID,
				Filename:    filename,
				ContentType: contentType,
				Size:        int64(len(data)),
			},
			data: data,
		}
	}}

	return objectID, sink, nil
}

func (f *fakeBlobStore) OpenReadStream(ctx context.Context, objectID string) (io.ReadCloser, error) {
	obj, ok := f.objects[objectID]
	if !ok {
		return nil, service.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (f *fakeBlobStore) GetAttrs(ctx context.Context, objectID string) (*service.BlobObject, error) {
	obj, ok := f.objects[objectID]
	if !ok {
		return nil, service.ErrObjectNotFound
	}
	attrs := obj.attrs
	return &attrs, nil
}

func (f *fakeBlobStore) FindByFilename(ctx context.Context, filename string) (*service.BlobObject, error) {
	for _, obj := range f.objects {
		if obj.attrs.Filename == filename {
			attrs := obj.attrs
			return &attrs, nil
		}
	}
	return nil, service.ErrObjectNotFound
}

func (f *fakeBlobStore) Delete(ctx context.Context, objectID string) error {
	if _, ok := f.objects[objectID]; !ok {
		return service.ErrObjectNotFound
	}
	delete(f.objects, objectID)
	return nil
}

func (f *fakeBlobStore) Close() error {
	return nil
}
