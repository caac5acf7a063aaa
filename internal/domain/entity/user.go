package entity

import (
	"time"
)

// Credit economy constants. New users start with enough credits for two
// downloads; each upload earns one download's worth of headroom twice over.
const (
	StartingCredits = 10
	UploadReward    = 10
	DownloadCost    = 5
)

type User struct {
	ID          string `json:"id" firestore:"id"`
	FirebaseUID string `json:"firebase_uid" firestore:"firebaseUid"`
	Email       string `json:"email" firestore:"email"`
	Name        string `json:"name" firestore:"name"`
	ProfilePic  string `json:"profile_pic,omitempty" firestore:"profilePic,omitempty"`

	Credits         int      `json:"credits" firestore:"credits"`
	UploadedFiles   []string `json:"uploaded_files" firestore:"uploadedFiles"`
	DownloadedFiles []string `json:"downloaded_files" firestore:"downloadedFiles"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// HasDownloaded reports whether the user already paid for the given file.
func (u *User) HasDownloaded(fileID string) bool {
	for _, id := range u.DownloadedFiles {
		if id == fileID {
			return true
		}
	}
	return false
}
