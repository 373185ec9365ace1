package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFolder_NonExistent(t *testing.T) {
	err := OpenFolder(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("Expected error for non-existent folder, got nil")
	}
}

func TestFreeSpace(t *testing.T) {
	tempDir := t.TempDir()

	free, err := FreeSpace(context.Background(), tempDir)
	if err != nil {
		t.Fatalf("FreeSpace failed: %v", err)
	}
	if free == 0 {
		t.Error("Expected some free space in temp dir")
	}

	// Not yet created output directories resolve to their parent
	missing := filepath.Join(tempDir, "a", "b", "c")
	freeMissing, err := FreeSpace(context.Background(), missing)
	if err != nil {
		t.Fatalf("FreeSpace on missing dir failed: %v", err)
	}
	if freeMissing == 0 {
		t.Error("Expected free space for missing dir")
	}
}

func TestIsLowOnSpace(t *testing.T) {
	low, free, err := IsLowOnSpace(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("IsLowOnSpace failed: %v", err)
	}
	if low != (free < LowSpaceThreshold) {
		t.Errorf("low=%v inconsistent with free=%d", low, free)
	}
}

func TestExistingParent(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"existing", tempDir, tempDir},
		{"one missing level", filepath.Join(tempDir, "x"), tempDir},
		{"several missing levels", filepath.Join(tempDir, "x", "y", "z"), tempDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := existingParent(tt.path); got != tt.expected {
				t.Errorf("existingParent(%s) = %s, expected %s", tt.path, got, tt.expected)
			}
		})
	}
}
