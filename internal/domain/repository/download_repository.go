package repository

import (
	"context"

	"sharesphere/internal/domain/entity"
)

type DownloadRepository interface {
	// CommitFirstDownload debits the download cost, records the user on the
	// file's download list, adds the file to the user's downloaded set and
	// appends the debit ledger entry, all inside one transaction. The
	// balance floor is re-checked inside the transaction, so a concurrent
	// download cannot drive the balance negative. Returns the file as read
	// inside the transaction. If the user turns out to have downloaded the
	// file already, the commit is a no-op and the file is returned as-is.
	//
	// Fails with ErrNotFound when the user or file is gone and with
	// ErrInsufficientCredits when the debit would overdraw the balance.
	CommitFirstDownload(ctx context.Context, userID, fileID string, entry *entity.LedgerEntry) (*entity.File, error)
}
