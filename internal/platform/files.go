package platform

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shirou/gopsutil/v3/disk"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// LowSpaceThreshold is the free space below which a batch gets a warning
const LowSpaceThreshold uint64 = 500 * 1024 * 1024

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

var ErrUnsupportedOS = goerr.New("unsupported operating system")

// OpenFolder opens a directory in the system file manager
func OpenFolder(dirPath string) error {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return goerr.Wrap(err, "failed to get absolute path", goerr.V("path", dirPath))
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return goerr.Wrap(err, "folder does not exist", goerr.V("path", absPath))
	}
	if !info.IsDir() {
		absPath = filepath.Dir(absPath)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return goerr.Wrap(ErrUnsupportedOS, "open folder", goerr.V("os", runtime.GOOS))
	}
}

// openFolderLinux tries xdg-open and then the common file managers
func openFolderLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return goerr.New("no suitable file manager found", goerr.V("path", dir))
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		if err := os.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
			return goerr.Wrap(err, "failed to create directory", goerr.V("path", dirPath))
		}
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// FreeSpace returns the bytes available to the user on the volume holding
// path. A path that does not exist yet is checked through its nearest
// existing parent.
func FreeSpace(ctx context.Context, path string) (uint64, error) {
	dir := existingParent(path)
	usage, err := disk.UsageWithContext(ctx, dir)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read disk usage", goerr.V("path", dir))
	}
	return usage.Free, nil
}

// IsLowOnSpace reports whether the volume holding path has less than
// LowSpaceThreshold bytes free
func IsLowOnSpace(ctx context.Context, path string) (bool, uint64, error) {
	free, err := FreeSpace(ctx, path)
	if err != nil {
		return false, 0, err
	}
	return free < LowSpaceThreshold, free, nil
}

func existingParent(path string) string {
	dir := filepath.Clean(path)
	for {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
