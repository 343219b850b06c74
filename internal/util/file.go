package util

import (
	"os"
	"path/filepath"
	"strings"
)

// VideoExtensions is the list of supported video file extensions.
var VideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".flv"}

// HasVideoExtension reports whether name ends with a supported extension,
// ignoring case.
func HasVideoExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range VideoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// IsRegularFile reports whether path is a regular file, following symlinks.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetExtension returns the lowercase extension of path, including the dot.
// Leading dots of the base name do not start an extension, so ".mp4" and
// "..mp4" have none while ".a.mp4" has ".mp4".
func GetExtension(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	return strings.ToLower(filepath.Ext(base))
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}

// PathExists reports whether anything exists at path.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
