// internal/adapters/filestore/json_file.go
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

const filePerm = 0o644

// JSONFile stores snapshots as indented JSON documents on the local filesystem
type JSONFile struct {
	dir    string
	atomic bool
	logger *slog.Logger
}

// Statically assert that *JSONFile implements the SnapshotStore interface.
var _ ports.SnapshotStore = (*JSONFile)(nil)

// NewJSONFile creates a file-backed snapshot store. Relative snapshot names
// resolve against dir. With atomic set, writes go through a temp file that is
// renamed over the destination.
func NewJSONFile(dir string, atomic bool, logger *slog.Logger) *JSONFile {
	return &JSONFile{
		dir:    dir,
		atomic: atomic,
		logger: logger.With(slog.String("storage", "file")),
	}
}

// Path returns the file a snapshot name resolves to
func (f *JSONFile) Path(name string) string {
	if filepath.IsAbs(name) || f.dir == "" {
		return name
	}
	return filepath.Join(f.dir, name)
}

// Load reads and decodes the snapshot file
func (f *JSONFile) Load(ctx context.Context, name string) (*domain.Stock, error) {
	path := f.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrMalformedSnapshot, path)
	}

	stock, err := domain.DecodeStock(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	f.logger.DebugContext(ctx, "snapshot file read",
		slog.String("path", path),
		slog.Int("bytes", len(data)))

	return stock, nil
}

// Save encodes the mapping and writes it to the snapshot file
func (f *JSONFile) Save(ctx context.Context, name string, stock *domain.Stock) error {
	path := f.Path(name)

	data, err := stock.EncodeIndented()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if f.atomic {
		err = writeFileAtomic(path, data, filePerm)
	} else {
		err = os.WriteFile(path, data, filePerm)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	f.logger.DebugContext(ctx, "snapshot file written",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.Bool("atomic", f.atomic))

	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
