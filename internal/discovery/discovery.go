// Package discovery provides file discovery for metadata scans.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	vmerrors "github.com/five82/vidmeta/internal/errors"
	"github.com/five82/vidmeta/internal/util"
)

// DiscoveryLogger defines the interface for discovery logging.
type DiscoveryLogger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// DiscoveryResult contains the results of file discovery with metadata.
type DiscoveryResult struct {
	Files        []string
	SkippedCount int
}

// FindVideoFiles lists the video files directly inside inputDir.
// Subdirectories are not searched. Returns files sorted by lowercase
// filename. A directory that is missing or unreadable yields a
// KindEnumeration error; an empty directory yields an empty slice.
func FindVideoFiles(inputDir string) ([]string, error) {
	result, err := scan(inputDir)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// FindVideoFilesWithLogging finds video files and logs discovery progress.
// Logs the first 5 files found plus a count summary.
func FindVideoFilesWithLogging(inputDir string, logger DiscoveryLogger) (*DiscoveryResult, error) {
	result, err := scan(inputDir)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logDiscoveredFiles(result, logger)
	}

	return result, nil
}

func scan(inputDir string) (*DiscoveryResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, vmerrors.NewEnumerationError(inputDir, err)
	}

	result := &DiscoveryResult{Files: []string{}}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		fullPath := filepath.Join(inputDir, name)

		if !util.HasVideoExtension(name) {
			result.SkippedCount++
			continue
		}

		// Symlinks are followed; anything that is not a regular file
		// (dangling links, sockets, links to directories) is skipped.
		if !util.IsRegularFile(fullPath) {
			result.SkippedCount++
			continue
		}

		result.Files = append(result.Files, fullPath)
	}

	sortByFilename(result.Files)

	return result, nil
}

// sortByFilename orders paths by lowercase base name. Names that differ
// only in case fall back to byte order so the result is total.
func sortByFilename(files []string) {
	sort.Slice(files, func(i, j int) bool {
		bi, bj := filepath.Base(files[i]), filepath.Base(files[j])
		li, lj := strings.ToLower(bi), strings.ToLower(bj)
		if li != lj {
			return li < lj
		}
		return bi < bj
	})
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(result *DiscoveryResult, logger DiscoveryLogger) {
	files := result.Files
	if len(files) == 0 {
		logger.Info("No video files found", "skipped", result.SkippedCount)
		return
	}

	logger.Info("Found video files", "count", len(files), "skipped", result.SkippedCount)

	maxToLog := min(5, len(files))

	for i := 0; i < maxToLog; i++ {
		logger.Debug("Discovered file", "name", filepath.Base(files[i]))
	}

	if len(files) > 5 {
		logger.Debug("More files discovered", "remaining", len(files)-5)
	}
}
