package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
	"sharesphere/pkg/logger"
)

type firestoreLedgerRepository struct {
	client *firestore.Client
}

func NewFirestoreLedgerRepository(client *firestore.Client) repository.LedgerRepository {
	return &firestoreLedgerRepository{
		client: client,
	}
}

func (r *firestoreLedgerRepository) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	_, err := r.client.Collection("ledger_entries").Doc(entry.ID).Set(ctx, entry)
	return err
}

func (r *firestoreLedgerRepository) GetByUserID(ctx context.Context, userID string) ([]entity.LedgerEntry, error) {
	// Simple query without OrderBy to avoid composite index requirement;
	// entries are sorted newest-first in memory.
	iter := r.client.Collection("ledger_entries").Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	entries := []entity.LedgerEntry{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var entry entity.LedgerEntry
		if err := doc.DataTo(&entry); err != nil {
			logger.Warn("Skipping malformed ledger document %s: %v", doc.Ref.ID, err)
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}
