package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/satisfaction-kiosk/internal/core/ports"
)

var ErrInvalidFileName = errors.New("invalid export file name")

type fileDownloader struct {
	dir string
	log logrus.FieldLogger
}

// NewFileDownloader saves exported payloads into dir, creating it on demand.
func NewFileDownloader(dir string, log logrus.FieldLogger) ports.Downloader {
	return &fileDownloader{dir: dir, log: log}
}

func (d *fileDownloader) Save(name string, data []byte) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(d.dir, name)
	tmp, err := os.CreateTemp(d.dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save export file: %w", err)
	}

	d.log.WithFields(logrus.Fields{"path": path, "bytes": len(data)}).Debug("export saved")
	return nil
}
