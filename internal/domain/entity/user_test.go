package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasDownloaded(t *testing.T) {
	user := &User{DownloadedFiles: []string{"f1", "f2"}}

	assert.True(t, user.HasDownloaded("f1"))
	assert.False(t, user.HasDownloaded("f3"))
	assert.False(t, (&User{}).HasDownloaded("f1"))
}
