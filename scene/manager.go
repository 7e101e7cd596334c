package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Decode reads a scene; omitted top-level fields keep their defaults
// Unknown keys are rejected
func Decode(r io.Reader) (Scene, error) {
	s := Default()
	s.Bodies = nil

	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Scene{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Scene{}, fmt.Errorf("%w: unknown key %q", ErrInvalidScene, undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Encode writes s as TOML
func Encode(w io.Writer, s Scene) error {
	return toml.NewEncoder(w).Encode(s)
}

// Load reads and validates a scene file
func Load(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Scene{}, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Manager handles save/load of named scenes in a directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a scene name
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".toml")
}

// Exists checks if a scene file exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save validates s and writes it to disk
func (m *Manager) Save(name string, s Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	f, err := os.Create(m.FilePath(name))
	if err != nil {
		return err
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a named scene
func (m *Manager) Load(name string) (Scene, error) {
	return Load(m.FilePath(name))
}

// List returns the sorted names of stored scenes
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	slices.Sort(names)
	return names, nil
}
