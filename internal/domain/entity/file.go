package entity

import (
	"time"
)

type File struct {
	ID          string `json:"id" firestore:"id"`
	ObjectID    string `json:"object_id" firestore:"objectId"`
	FileName    string `json:"file_name" firestore:"fileName"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	Size        int64  `json:"size" firestore:"size"`
	FileType    string `json:"file_type" firestore:"fileType"`

	// UploadedBy holds the identity provider's subject id, not the local
	// user id. List responses resolve it to an email at read time.
	UploadedBy string `json:"uploaded_by" firestore:"uploadedBy"`

	UploadDate time.Time `json:"upload_date" firestore:"uploadDate"`
	Downloads  []string  `json:"downloads" firestore:"downloads"`
	Likes      int       `json:"likes" firestore:"likes"`
}

// StorageObjectID returns the blob object backing this file. Records
// migrated from before the objectId field fall back to their own id.
func (f *File) StorageObjectID() string {
	if f.ObjectID != "" {
		return f.ObjectID
	}
	return f.ID
}

func (f *File) DownloadedBy(userID string) bool {
	for _, id := range f.Downloads {
		if id == userID {
			return true
		}
	}
	return false
}
