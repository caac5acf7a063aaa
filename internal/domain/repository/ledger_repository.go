package repository

import (
	"context"

	"sharesphere/internal/domain/entity"
)

type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	GetByUserID(ctx context.Context, userID string) ([]entity.LedgerEntry, error)
}
