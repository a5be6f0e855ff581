// Package pk3 provides reading and writing of PK3 archives, the zip
// based containers id Tech 3 loads assets from.
package pk3

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludoplex/quakenite/pkg/encoding"
)

// ErrNotFound is returned when a requested file is not in the archive.
var ErrNotFound = errors.New("file not found in archive")

// Archive represents an opened PK3 archive.
type Archive struct {
	reader *zip.ReadCloser
	files  map[string]*zip.File
	names  []string
}

// Open opens a PK3 archive for reading. Entry names are normalized to
// lowercase forward-slash paths for lookup.
func Open(path string) (*Archive, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	archive := &Archive{
		reader: reader,
		files:  make(map[string]*zip.File),
	}
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := encoding.NormalizeAssetPath(f.Name)
		if _, dup := archive.files[name]; !dup {
			archive.names = append(archive.names, name)
		}
		archive.files[name] = f
	}
	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.reader != nil {
		return a.reader.Close()
	}
	return nil
}

// List returns all file paths in the archive in stored order.
func (a *Archive) List() []string {
	result := make([]string, len(a.names))
	copy(result, a.names)
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(path string) bool {
	_, ok := a.files[encoding.NormalizeAssetPath(path)]
	return ok
}

// Read reads a file from the archive.
func (a *Archive) Read(path string) ([]byte, error) {
	f, ok := a.files[encoding.NormalizeAssetPath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Extract writes every file in the archive below destDir, recreating
// the stored directory layout. Entries that would escape destDir are
// rejected.
func (a *Archive) Extract(destDir string) error {
	for _, name := range a.names {
		dest := filepath.Join(destDir, filepath.FromSlash(name))
		rel, err := filepath.Rel(destDir, dest)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("entry %s escapes destination directory", name)
		}

		data, err := a.Read(name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("extracting %s: %w", name, err)
		}
	}
	return nil
}

// Writer builds a PK3 archive. Files appear in the order they are
// added, so identical inputs produce identical archives.
type Writer struct {
	f  *os.File
	zw *zip.Writer
}

// Create creates a PK3 archive at path, making parent directories as
// needed.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}
	return &Writer{f: f, zw: zip.NewWriter(f)}, nil
}

// Add stores data under the given path, normalized to the lowercase
// forward-slash form the game looks up.
func (w *Writer) Add(name string, data []byte) error {
	header := &zip.FileHeader{
		Name:   encoding.NormalizeAssetPath(name),
		Method: zip.Deflate,
	}
	entry, err := w.zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Close finishes the archive and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return fmt.Errorf("finishing archive: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}
