// =============================================================================
// dialect - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the ingestion CLI,
// including:
//   - Input file discovery
//   - File archival (moving ingested files)
//   - Output file naming
//   - Modification token derivation for cache keys
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the input archive after successful ingestion
//   - Failed files remain in their original location
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the ingestion CLI.
type FileManager struct {
	// InputDir is the directory where input files are placed.
	InputDir string

	// OutputDir is the directory where exported files are placed.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// tabularExtensions are the input file extensions the CLI ingests.
var tabularExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xlsx": true,
}

// DiscoverInputFiles scans the input directory for ingestable files.
//
// RETURNS:
//   - A sorted slice of file paths.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	var files []string

	err := filepath.Walk(fm.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if tabularExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// =============================================================================
// SOURCE IDENTITY
// =============================================================================

// ModToken derives the modification token for a file, used as half of the
// cache key. Two loads of an unchanged file yield the same token; any write
// to the file yields a new one.
func ModToken(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()), nil
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// GenerateOutputFileName builds an export file name from the configured
// format string.
//
// PARAMETERS:
//   - format: the name format, with placeholders {uuid}, {timestamp},
//     {name}, and {ext}.
//   - datasetName: the dataset display name.
//   - extension: the export format extension, without the dot.
func GenerateOutputFileName(format, datasetName, extension string) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{name}", datasetName)
	name = strings.ReplaceAll(name, "{ext}", extension)
	return name
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInput moves an ingested input file into the input archive.
//
// RETURNS:
//   - The archived path.
//   - An error if the move fails.
func (fm *FileManager) ArchiveInput(path string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	target := filepath.Join(fm.InputArchiveDir, filepath.Base(path))

	// Rename first; fall back to copy-and-remove across filesystems.
	if err := os.Rename(path, target); err == nil {
		return target, nil
	}

	if err := copyFile(path, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove %s after archiving: %w", path, err)
	}

	return target, nil
}

// copyFile copies src to dst, preserving content only.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}
