package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to path through a temp file in the same directory
// followed by a rename, so readers never observe a partial file. Skin
// images and the config file are both written this way.
//
// On any failure the previous file at path, if any, is left untouched.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	// Ensure the parent directory exists
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	// Create the temp file next to the target so the rename stays on
	// one filesystem
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Remove the temp file on any error path
	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	// Write the skin or config bytes
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// Flush to disk before the rename makes the file visible
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	// Close before rename
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Apply the final permissions
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	// Swap the temp file into place; the rename is atomic on POSIX
	// systems when both paths share a filesystem
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to target: %w", err)
	}

	success = true
	return nil
}

// AtomicWriteWithBackup moves an existing file at path to path+".bak"
// before writing. It returns the backup path, or "" when there was nothing
// to back up.
func AtomicWriteWithBackup(path string, data []byte, perm os.FileMode) (string, error) {
	// Keep the previous file, if any, next to the new one
	backupPath := ""
	if _, err := os.Stat(path); err == nil {
		backupPath = path + ".bak"
		if err := os.Rename(path, backupPath); err != nil {
			return "", fmt.Errorf("failed to create backup: %w", err)
		}
	}

	// Write the replacement
	if err := AtomicWrite(path, data, perm); err != nil {
		return backupPath, err
	}

	return backupPath, nil
}
