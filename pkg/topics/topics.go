// Package topics provides a topic-based help system: markdown documents
// embedded in the binary, listed and rendered on demand.
package topics

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/envup/pkg/errors"
)

// Topic is one help document.
type Topic struct {
	Name    string
	Content string
	Format  string // file extension, drives rendering
}

// Manager holds the topics loaded from a filesystem.
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// New loads every .md and .txt file under root in fsys as a topic.
func New(fsys fs.FS, root string, renderer Renderer) (*Manager, error) {
	if renderer == nil {
		renderer = &PlainRenderer{}
	}
	m := &Manager{
		topics:   make(map[string]*Topic),
		renderer: renderer,
	}

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".txt" {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), ext)
		m.topics[name] = &Topic{Name: name, Content: string(content), Format: ext}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot load help topics")
	}
	return m, nil
}

// Names returns the available topic names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the rendered content of a topic.
func (m *Manager) Render(name string) (string, error) {
	topic, ok := m.topics[name]
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "no help topic %q", name)
	}
	return m.renderer.Render(topic.Content, topic.Format), nil
}
