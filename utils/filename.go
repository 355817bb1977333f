// utils/filename.go - Stored filenames for uploaded spreadsheets
package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateStoredFilename produces a collision-free name for an uploaded file
// while keeping the original extension, so the raw upload can be kept on
// disk for auditing.
func GenerateStoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.NewString(), ext)
}
