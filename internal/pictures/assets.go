package pictures

import (
	"os"
	"path/filepath"
)

// WriteAsset writes data under dir with the given name and returns the full path.
func WriteAsset(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// ReadAsset reads a previously written asset back from disk.
func ReadAsset(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// RemoveAsset removes a previously written asset. Removal is best-effort:
// it is used to clean up partial artifacts on pipeline failure.
func RemoveAsset(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
