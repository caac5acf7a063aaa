package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/domain/repository"
	"sharesphere/pkg/logger"
)

// Firestore "in" queries accept at most 30 values per filter.
const inQueryBatchSize = 30

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	return err
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetBySubjectID(ctx context.Context, subjectID string) (*entity.User, error) {
	query := r.client.Collection("users").Where("firebaseUid", "==", subjectID).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	return err
}

func (r *firestoreUserRepository) EmailsBySubjectIDs(ctx context.Context, subjectIDs []string) (map[string]string, error) {
	emails := make(map[string]string, len(subjectIDs))

	for start := 0; start < len(subjectIDs); start += inQueryBatchSize {
		end := start + inQueryBatchSize
		if end > len(subjectIDs) {
			end = len(subjectIDs)
		}

		iter := r.client.Collection("users").Where("firebaseUid", "in", subjectIDs[start:end]).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, err
			}

			var user entity.User
			if err := doc.DataTo(&user); err != nil {
				logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
				continue
			}
			emails[user.FirebaseUID] = user.Email
		}
		iter.Stop()
	}

	return emails, nil
}

func (r *firestoreUserRepository) PullDownloadedFile(ctx context.Context, fileID string) error {
	iter := r.client.Collection("users").Where("downloadedFiles", "array-contains", fileID).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "downloadedFiles", Value: firestore.ArrayRemove(fileID)},
			{Path: "updatedAt", Value: time.Now()},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
