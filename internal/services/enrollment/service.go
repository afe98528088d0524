package enrollment

import (
	"fuzex/internal/domain"
	"fuzex/internal/extractor"
	"fuzex/internal/store"
)

// Service manages named enrollments backed by a vault. All enrollments in
// one vault share the extractor's configuration; a helper recorded under a
// different geometry is rejected at reproduce time.
type Service struct {
	ext   *extractor.Extractor
	vault *store.Vault
}

// New returns an enrollment service using the given extractor and vault.
func New(ext *extractor.Extractor, vault *store.Vault) *Service {
	return &Service{ext: ext, vault: vault}
}

// Enroll generates a key from the reading and persists the helper under
// name. The key is returned to the caller and never stored.
func (s *Service) Enroll(name string, reading []byte, overwrite bool) (domain.Key, error) {
	key, helper, err := s.ext.Generate(reading)
	if err != nil {
		return domain.Key{}, err
	}
	if err := s.vault.Save(name, helper, overwrite); err != nil {
		return domain.Key{}, err
	}
	return key, nil
}

// Reproduce replays a reading against the helper stored under name. The
// boolean is false when the reading is too far from the enrolled one.
func (s *Service) Reproduce(name string, reading []byte) (domain.Key, bool, error) {
	helper, err := s.vault.Load(name)
	if err != nil {
		return domain.Key{}, false, err
	}
	return s.ext.Reproduce(reading, helper)
}

// List returns the stored enrollments.
func (s *Service) List() ([]store.Record, error) { return s.vault.List() }

// Remove deletes an enrollment.
func (s *Service) Remove(name string) error { return s.vault.Delete(name) }
