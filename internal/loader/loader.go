// Package loader is the file boundary of a waypoint import: it validates the
// file selection, reads the chosen file, and runs the parse and build steps
// against a scene sink.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/dusk-indust/waypoints/internal/csvrows"
	"github.com/dusk-indust/waypoints/internal/waypoint"
)

var (
	// ErrInvalidFileSelection means no file, several files, or a directory
	// was selected.
	ErrInvalidFileSelection = errors.New("loader: invalid file selection")

	// ErrFileReadFailure means the read failed or produced no content.
	ErrFileReadFailure = errors.New("loader: file read failure")
)

// Selection is the set of paths chosen by the user. Exactly one is accepted.
type Selection []string

// Reader reads a whole file.
type Reader interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSReader reads from the local filesystem.
type OSReader struct{}

func (OSReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSReader) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// FSReader adapts an fs.FS, e.g. testing/fstest.MapFS or an embed.FS.
type FSReader struct{ FS fs.FS }

func (r FSReader) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(r.FS, name)
}

func (r FSReader) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(r.FS, name)
}

// Loader wires file selection to the parser and builder.
type Loader struct {
	reader Reader
	opts   waypoint.Options
	log    *slog.Logger
}

// New returns a Loader. A nil reader means OSReader.
func New(reader Reader, opts waypoint.Options) *Loader {
	if reader == nil {
		reader = OSReader{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{reader: reader, opts: opts, log: logger}
}

// Load reads the single selected file and builds its waypoints into sink.
// Selection and read failures are logged before being returned.
func (l *Loader) Load(ctx context.Context, sel Selection, sink waypoint.NodeSink) (*waypoint.Result, error) {
	path, text, err := l.Read(sel)
	if err != nil {
		return nil, err
	}
	res, err := l.LoadText(ctx, text, sink)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Read validates the selection and returns the chosen path with its
// contents. Selection and read failures are logged before being returned.
func (l *Loader) Read(sel Selection) (path, text string, err error) {
	path, err = l.selected(sel)
	if err != nil {
		l.log.Error("file selection rejected", "error", err)
		return "", "", err
	}

	data, err := l.reader.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrFileReadFailure, path, err)
		l.log.Error("failed to read the file", "path", path, "error", err)
		return "", "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		err = fmt.Errorf("%w: %s: no content", ErrFileReadFailure, path)
		l.log.Error("failed to read the file", "path", path, "error", err)
		return "", "", err
	}

	l.log.Debug("file read", "path", path, "bytes", len(data))
	return path, string(data), nil
}

// LoadText parses already-read CSV text and builds it into sink.
func (l *Loader) LoadText(ctx context.Context, text string, sink waypoint.NodeSink) (*waypoint.Result, error) {
	rows, err := csvrows.Parse(text)
	if err != nil {
		return nil, err
	}
	res, err := waypoint.Build(ctx, rows, sink, l.opts)
	if err != nil {
		return nil, err
	}
	l.log.Info("waypoints loaded", "count", len(res.Nodes), "dangling", len(res.Dangling))
	return res, nil
}

func (l *Loader) selected(sel Selection) (string, error) {
	switch len(sel) {
	case 0:
		return "", fmt.Errorf("%w: no file selected", ErrInvalidFileSelection)
	case 1:
	default:
		return "", fmt.Errorf("%w: %d files selected, expected one", ErrInvalidFileSelection, len(sel))
	}
	path := sel[0]
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidFileSelection)
	}
	info, err := l.reader.Stat(path)
	if err != nil {
		// Missing files surface as read failures, like an unreadable upload.
		return path, nil
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalidFileSelection, path)
	}
	return path, nil
}
