// Package textfile reads and writes the edited file as raw UTF-8 text.
package textfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kobzarvs/boxedit/internal/logger"
)

var (
	ErrCreate = errors.New("unable to create file, check your permissions")
	ErrWrite  = errors.New("unable to write file")
)

const filePerm = 0o644

// Load returns the contents of path. A file that cannot be read is treated
// as not existing yet: an empty file is created and "" is returned.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		logger.Debug("file loaded", "path", path, "bytes", len(data))
		return string(data), nil
	}
	logger.Info("file not readable, creating", "path", path, "err", err)
	if err := create(path); err != nil {
		return "", err
	}
	return "", nil
}

// Save overwrites path with text. If the file vanished since it was loaded
// it is created and the write is retried once.
func Save(path, text string) error {
	err := overwrite(path, text)
	if err == nil {
		logger.Info("file saved", "path", path, "bytes", len(text))
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	logger.Warn("file missing on save, recreating", "path", path)
	if err := create(path); err != nil {
		return err
	}
	if err := overwrite(path, text); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	logger.Info("file saved", "path", path, "bytes", len(text))
	return nil
}

// overwrite truncates and rewrites an existing file. It does not create one.
func overwrite(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func create(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrCreate, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrCreate, path, err)
	}
	return nil
}
