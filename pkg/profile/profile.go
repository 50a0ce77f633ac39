// Package profile mutates a shell startup file with set semantics over
// lines: a line is appended only if it is not already present verbatim,
// so repeated runs never accumulate duplicates. This is the single
// primitive through which every stage touches the profile file.
package profile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/arthur-debert/envup/pkg/logging"
	"github.com/rs/zerolog"
)

// Editor edits one profile file.
type Editor struct {
	path   string
	logger zerolog.Logger
}

// NewEditor creates an Editor for the given file. The file does not
// need to exist yet.
func NewEditor(path string) *Editor {
	return &Editor{
		path:   path,
		logger: logging.GetLogger("profile"),
	}
}

// Path returns the profile file path.
func (e *Editor) Path() string { return e.path }

// AppendOnce appends line to the file unless an identical line already
// exists. Existing content is preserved byte-for-byte; the only change
// is the appended line (plus a separating newline when the file did not
// end with one). Returns true when the line was appended.
func (e *Editor) AppendOnce(line string) (bool, error) {
	content, err := e.read()
	if err != nil {
		return false, err
	}

	if containsLine(content, line) {
		e.logger.Debug().Str("line", line).Msg("Profile line already present")
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrProfileWrite,
			"cannot create parent of %s", e.path)
	}

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrProfileWrite, "cannot open %s", e.path)
	}
	defer func() { _ = f.Close() }()

	payload := line + "\n"
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		payload = "\n" + payload
	}
	if _, err := f.WriteString(payload); err != nil {
		return false, errors.Wrapf(err, errors.ErrProfileWrite, "cannot append to %s", e.path)
	}

	e.logger.Info().Str("line", line).Str("file", e.path).Msg("Appended profile line")
	return true, nil
}

// Contains reports whether the exact line is already in the file.
// A missing file contains nothing.
func (e *Editor) Contains(line string) (bool, error) {
	content, err := e.read()
	if err != nil {
		return false, err
	}
	return containsLine(content, line), nil
}

// Lines returns the file's lines. A missing file yields none.
func (e *Editor) Lines() ([]string, error) {
	content, err := e.read()
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n"), nil
}

func (e *Editor) read() (string, error) {
	data, err := os.ReadFile(e.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrProfileWrite, "cannot read %s", e.path)
	}
	return string(data), nil
}

func containsLine(content, line string) bool {
	for _, existing := range strings.Split(content, "\n") {
		if existing == line {
			return true
		}
	}
	return false
}
