package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
)

type firestoreDownloadRepository struct {
	client *firestore.Client
}

func NewFirestoreDownloadRepository(client *firestore.Client) repository.DownloadRepository {
	return &firestoreDownloadRepository{
		client: client,
	}
}

func (r *firestoreDownloadRepository) CommitFirstDownload(ctx context.Context, userID, fileID string, entry *entity.LedgerEntry) (*entity.File, error) {
	var result *entity.File

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		userRef := r.client.Collection("users").Doc(userID)
		fileRef := r.client.Collection("files").Doc(fileID)

		userDoc, err := tx.Get(userRef)
		if err != nil {
			if isNotFound(err) {
				return repository.ErrNotFound
			}
			return err
		}
		fileDoc, err := tx.Get(fileRef)
		if err != nil {
			if isNotFound(err) {
				return repository.ErrNotFound
			}
			return err
		}

		var user entity.User
		if err := userDoc.DataTo(&user); err != nil {
			return err
		}
		var file entity.File
		if err := fileDoc.DataTo(&file); err != nil {
			return err
		}

		// A concurrent request may have paid for this file between the
		// caller's membership check and this transaction; the download is
		// then already free of charge.
		if user.HasDownloaded(fileID) {
			result = &file
			return nil
		}

		// The caller pre-checks the balance, but only this check is
		// authoritative: the debit and the floor check commit together.
		if user.Credits < entity.DownloadCost {
			return repository.ErrInsufficientCredits
		}

		if !file.DownloadedBy(user.ID) {
			file.Downloads = append(file.Downloads, user.ID)
		}

		user.Credits -= entity.DownloadCost
		user.DownloadedFiles = append(user.DownloadedFiles, fileID)
		user.UpdatedAt = time.Now()

		if err := tx.Set(fileRef, &file); err != nil {
			return err
		}
		if err := tx.Set(userRef, &user); err != nil {
			return err
		}

		entryRef := r.client.Collection("ledger_entries").Doc(entry.ID)
		if err := tx.Set(entryRef, entry); err != nil {
			return err
		}

		result = &file
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
