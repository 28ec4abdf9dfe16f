package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureUserConfig returns dataDir/config.yml. On first run the file is
// seeded from the template at templatePath, kept byte for byte so its
// comments survive, or from Default() when there is no template. A template
// that does not parse or validate is refused and nothing is written.
func EnsureUserConfig(dataDir string, templatePath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")
	if _, err := os.Stat(userPath); err == nil {
		return userPath, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	raw, err := os.ReadFile(templatePath)
	if errors.Is(err, fs.ErrNotExist) {
		return userPath, SaveAtomic(userPath, Default())
	}
	if err != nil {
		return "", err
	}

	cfg, err := Load(templatePath)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", templatePath, err)
	}
	if err := Validate(cfg); err != nil {
		return "", fmt.Errorf("template %s: %w", templatePath, err)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	tmp := userPath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, userPath); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return userPath, nil
}
