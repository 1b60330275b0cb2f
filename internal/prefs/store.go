// Package prefs provides a small persisted key-value store for display
// preferences. The review controller uses it to remember the card size
// across sessions; nothing else in the application is persisted this way.
package prefs

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the preferences file name inside the config directory.
const FileName = "prefs.yaml"

// Store is a file-backed string key-value store.
//
// Design decision: A flat YAML map is enough here. The only consumer is
// the single display-density preference, and a multi-key schema or a
// database would be overkill for one setting that survives restarts.
type Store struct {
	// path is the preferences file location.
	path string

	// values is the in-memory copy of the file contents.
	values map[string]string
}

// Open loads the store from dir/prefs.yaml.
// A missing file is not an error; the store starts empty and the file is
// created on the first Set.
func Open(dir string) (*Store, error) {
	s := &Store{
		path:   filepath.Join(dir, FileName),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(s.path) //nolint:gosec // Path is derived from the XDG config dir
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, err
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

// Get returns the stored value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores the value for key and writes the file immediately.
// Writing on every change keeps the file consistent even if the process
// exits without cleanup, matching how browser-local storage behaves.
func (s *Store) Set(key, value string) error {
	s.values[key] = value

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
