package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/rs/zerolog"
)

// jsonStore keeps every user's prescriptions in one file, shaped as
// {"user": {"prescription name": {...record...}}}. Every write rewrites the
// whole file.
type jsonStore struct {
	path string
	log  zerolog.Logger
}

type jsonFile map[string]map[string]prescription.Prescription

func openJSON(path string, log zerolog.Logger) (*jsonStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Msg("opened json store")
	return &jsonStore{path: path, log: log}, nil
}

// read loads the file. A missing or corrupted file reads as empty.
func (s *jsonStore) read() (jsonFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return jsonFile{}, nil
	}
	if err != nil {
		return nil, err
	}

	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("ignoring unreadable prescriptions file")
		return jsonFile{}, nil
	}
	if f == nil {
		f = jsonFile{}
	}
	return f, nil
}

func (s *jsonStore) write(f jsonFile) error {
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *jsonStore) List(_ context.Context, user string) ([]prescription.Prescription, error) {
	f, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]prescription.Prescription, 0, len(f[user]))
	for name, rx := range f[user] {
		rx.Name = name
		out = append(out, rx)
	}
	return out, nil
}

func (s *jsonStore) Get(_ context.Context, user, name string) (prescription.Prescription, error) {
	f, err := s.read()
	if err != nil {
		return prescription.Prescription{}, err
	}
	rx, ok := f[user][name]
	if !ok {
		return prescription.Prescription{}, prescription.ErrNotFound
	}
	rx.Name = name
	return rx, nil
}

func (s *jsonStore) Put(_ context.Context, user string, rx prescription.Prescription) error {
	f, err := s.read()
	if err != nil {
		return err
	}
	if f[user] == nil {
		f[user] = make(map[string]prescription.Prescription)
	}
	f[user][rx.Name] = rx
	if err := s.write(f); err != nil {
		return err
	}
	s.log.Debug().Str("user", user).Str("prescription", rx.Name).Msg("saved")
	return nil
}

func (s *jsonStore) Delete(_ context.Context, user, name string) error {
	f, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := f[user][name]; !ok {
		return prescription.ErrNotFound
	}
	delete(f[user], name)
	if len(f[user]) == 0 {
		delete(f, user)
	}
	return s.write(f)
}

func (s *jsonStore) Close() error { return nil }
