package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Download locations
const (
	AndroidDownloadsDir = "/sdcard/Download"
	AppDownloadsFolder  = "VividDownloader"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	AndroidAM       = "am"
)

// LinuxFileManagers are tried in order when xdg-open is missing
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// IsAndroid reports whether the process runs on Android. Fyne Android apps
// run as libdist.so, and GOOS may say linux on some toolchains.
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		os.Getenv("ANDROID_STORAGE") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so"
}

// DefaultDownloadDir returns the platform default download directory: the
// shared Download folder on Android, ~/Downloads/VividDownloader elsewhere.
func DefaultDownloadDir() (string, error) {
	if IsAndroid() {
		return AndroidDownloadsDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads", AppDownloadsFolder), nil
}

// EnsureDir creates dir and its parents if it doesn't exist
func EnsureDir(fs afero.Fs, dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("empty directory path")
	}
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if exists {
		return nil
	}
	if err := fs.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// ResolveDownloadDir picks override, or the platform default when override is
// empty, and makes sure the directory exists. It runs once at startup.
func ResolveDownloadDir(fs afero.Fs, override string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" {
		var err error
		if dir, err = DefaultDownloadDir(); err != nil {
			return "", err
		}
	}
	if strings.HasPrefix(dir, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}
	if err := EnsureDir(fs, dir); err != nil {
		return "", err
	}
	return dir, nil
}

// OpenDirectory shows dir in the system file manager
func OpenDirectory(dir string) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}

	if IsAndroid() {
		return openDirectoryAndroid(absPath)
	}
	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openDirectoryLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirectoryLinux tries xdg-open, then the usual file managers
func openDirectoryLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return fmt.Errorf("no suitable file manager found")
}

// openDirectoryAndroid opens the Downloads root through the documents provider,
// then falls back to a plain file:// view intent.
func openDirectoryAndroid(dir string) error {
	attempts := [][]string{
		{"start", "-a", "android.intent.action.VIEW", "-d", "content://com.android.externalstorage.documents/root/primary/Download"},
		{"start", "-a", "android.intent.action.VIEW", "-d", "file://" + dir},
	}
	var err error
	for _, args := range attempts {
		if err = exec.Command(AndroidAM, args...).Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to open %s: %w", dir, err)
}

// NotifyMediaScanner tells the Android media scanner about a new file so it
// shows up in the gallery. It is a no-op on other platforms and never blocks.
func NotifyMediaScanner(filePath string, log logrus.FieldLogger) {
	if !IsAndroid() || filePath == "" {
		return
	}

	cmd := exec.Command(AndroidAM, "broadcast", "-a", "android.intent.action.MEDIA_SCANNER_SCAN_FILE", "-d", "file://"+filePath)
	go func() {
		if err := cmd.Run(); err != nil && log != nil {
			log.WithError(err).WithField("path", filePath).Warn("failed to notify media scanner")
		}
	}()
}
