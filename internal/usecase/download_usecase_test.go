package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharesphere/internal/domain/entity"
	"sharesphere/pkg/errors"
)

func newDownloadFixture(t *testing.T) (*DownloadUseCase, *fakeUserRepo, *fakeFileRepo, *fakeLedgerRepo, *entity.File) {
	t.Helper()

	userRepo := newFakeUserRepo()
	fileRepo := newFakeFileRepo()
	ledgerRepo := newFakeLedgerRepo()
	blobStore := newFakeBlobStore()
	downloadRepo := &fakeDownloadRepo{users: userRepo, files: fileRepo, ledger: ledgerRepo}

	owner := seedUser(userRepo, "owner", "uid-owner", 10)
	fileUC := NewFileUseCase(fileRepo, userRepo, ledgerRepo, blobStore)
	file, _, err := fileUC.Upload(context.Background(), owner, UploadFileInput{
		Filename:    "shared.txt",
		ContentType: "text/plain",
		Size:        7,
		Body:        strings.NewReader("payload"),
	})
	require.NoError(t, err)

	// The owner's upload reward is not under test here.
	ledgerRepo.entries = nil

	uc := NewDownloadUseCase(userRepo, fileRepo, downloadRepo, blobStore)
	return uc, userRepo, fileRepo, ledgerRepo, file
}

func TestFirstDownloadDebitsAndRecords(t *testing.T) {
	uc, userRepo, fileRepo, ledgerRepo, file := newDownloadFixture(t)
	seedUser(userRepo, "u1", "uid-1", entity.StartingCredits)

	got, rc, err := uc.Download(context.Background(), "uid-1", file.ID)
	require.NoError(t, err)
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, file.ID, got.ID)

	user, _ := userRepo.GetByID(context.Background(), "u1")
	assert.Equal(t, entity.StartingCredits-entity.DownloadCost, user.Credits)
	assert.Equal(t, []string{file.ID}, user.DownloadedFiles)

	stored, _ := fileRepo.GetByID(context.Background(), file.ID)
	assert.Equal(t, []string{"u1"}, stored.Downloads)

	require.Len(t, ledgerRepo.entries, 1)
	assert.Equal(t, entity.LedgerTypeDebit, ledgerRepo.entries[0].Type)
	assert.Equal(t, -entity.DownloadCost, ledgerRepo.entries[0].Amount)
}

func TestRedownloadIsFreeAndSideEffectFree(t *testing.T) {
	uc, userRepo, fileRepo, ledgerRepo, file := newDownloadFixture(t)
	seedUser(userRepo, "u1", "uid-1", entity.StartingCredits)

	_, rc, err := uc.Download(context.Background(), "uid-1", file.ID)
	require.NoError(t, err)
	rc.Close()

	_, rc, err = uc.Download(context.Background(), "uid-1", file.ID)
	require.NoError(t, err)
	rc.Close()

	user, _ := userRepo.GetByID(context.Background(), "u1")
	assert.Equal(t, entity.StartingCredits-entity.DownloadCost, user.Credits)
	assert.Equal(t, []string{file.ID}, user.DownloadedFiles, "downloaded set must stay duplicate-free")

	stored, _ := fileRepo.GetByID(context.Background(), file.ID)
	assert.Equal(t, []string{"u1"}, stored.Downloads)

	assert.Len(t, ledgerRepo.entries, 1, "re-download must not append ledger entries")
}

func TestDownloadInsufficientCredits(t *testing.T) {
	uc, userRepo, fileRepo, ledgerRepo, file := newDownloadFixture(t)
	seedUser(userRepo, "u1", "uid-1", entity.DownloadCost-1)

	_, _, err := uc.Download(context.Background(), "uid-1", file.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	user, _ := userRepo.GetByID(context.Background(), "u1")
	assert.Equal(t, entity.DownloadCost-1, user.Credits)
	assert.Empty(t, user.DownloadedFiles)

	stored, _ := fileRepo.GetByID(context.Background(), file.ID)
	assert.Empty(t, stored.Downloads)
	assert.Empty(t, ledgerRepo.entries)
}

func TestDownloadValidatesFileID(t *testing.T) {
	uc, userRepo, _, _, _ := newDownloadFixture(t)
	seedUser(userRepo, "u1", "uid-1", entity.StartingCredits)

	_, _, err := uc.Download(context.Background(), "uid-1", "not-a-uuid")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestDownloadUnknownUser(t *testing.T) {
	uc, _, _, _, file := newDownloadFixture(t)

	_, _, err := uc.Download(context.Background(), "uid-ghost", file.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDownloadUnknownFile(t *testing.T) {
	uc, userRepo, _, _, _ := newDownloadFixture(t)
	seedUser(userRepo, "u1", "uid-1", entity.StartingCredits)

	_, _, err := uc.Download(context.Background(), "uid-1", "33333333-3333-3333-3333-333333333333")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
