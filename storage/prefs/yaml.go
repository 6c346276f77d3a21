package prefs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cumaze/registro-consorcio/core/branding"
)

// Preferences are the display settings kept between runs. They hold no academic data.
type Preferences struct {
	InstitutionName string `yaml:"institutionName"`
}

// YAMLStore keeps Preferences in a YAML file.
type YAMLStore struct {
	path  string
	mutex sync.Mutex
}

// NewYAMLStore returns a store backed by path. The file is created on the first save.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

var _ branding.NameStore = (*YAMLStore)(nil)

func (s *YAMLStore) Load() (Preferences, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.load()
}

func (s *YAMLStore) load() (Preferences, error) {
	var p Preferences
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, errors.Wrap(err, "reading preferences")
	}
	if err = yaml.Unmarshal(b, &p); err != nil {
		return Preferences{}, errors.Wrapf(err, "parsing %s", s.path)
	}
	return p, nil
}

// Save writes p through a temp file so a crash never leaves a truncated file behind.
func (s *YAMLStore) Save(p Preferences) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.save(p)
}

func (s *YAMLStore) save(p Preferences) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encoding preferences")
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating preferences dir")
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.yaml")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing preferences")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "writing preferences")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing preferences")
}

func (s *YAMLStore) LoadName() (string, error) {
	p, err := s.Load()
	return p.InstitutionName, err
}

func (s *YAMLStore) SaveName(name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, err := s.load()
	if err != nil {
		return err
	}
	p.InstitutionName = name
	return s.save(p)
}
