package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"fuzex/internal/domain"
)

var (
	helpersBucket = []byte("helpers")
	metaBucket    = []byte("meta")
)

// ErrNotFound reports a name with no enrollment in the vault.
var ErrNotFound = errors.New("enrollment not found")

// ErrExists reports an enrollment name that is already taken.
var ErrExists = errors.New("enrollment already exists")

// Record describes one stored enrollment for listing.
type Record struct {
	Name        string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	InputBits   uint32    `json:"input_bits"`
	LockerCount int       `json:"locker_count"`
	SampleWidth uint32    `json:"sample_width"`
}

// Vault is a bbolt-backed enrollment store.
type Vault struct {
	db *bolt.DB
}

// Open opens or creates the vault database at path.
func Open(path string) (*Vault, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{helpersBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Vault{db: db}, nil
}

// Close closes the database.
func (v *Vault) Close() error { return v.db.Close() }

// Save stores a helper under name. An existing enrollment is rejected
// unless overwrite is set.
func (v *Vault) Save(name string, h *domain.Helper, overwrite bool) error {
	blob, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	meta, err := json.Marshal(Record{
		CreatedAt:   time.Now().UTC(),
		InputBits:   h.InputBits,
		LockerCount: len(h.Lockers),
		SampleWidth: h.SampleWidth,
	})
	if err != nil {
		return err
	}
	return v.db.Update(func(tx *bolt.Tx) error {
		helpers := tx.Bucket(helpersBucket)
		if !overwrite && helpers.Get([]byte(name)) != nil {
			return fmt.Errorf("%w: %q", ErrExists, name)
		}
		if err := helpers.Put([]byte(name), blob); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(name), meta)
	})
}

// Load returns the helper stored under name.
func (v *Vault) Load(name string) (*domain.Helper, error) {
	var h domain.Helper
	err := v.db.View(func(tx *bolt.Tx) error {
		blob := tx.Bucket(helpersBucket).Get([]byte(name))
		if blob == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		// The slice is only valid inside the transaction; UnmarshalBinary
		// copies everything out.
		return h.UnmarshalBinary(blob)
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// List returns all enrollments sorted by name.
func (v *Vault) List() ([]Record, error) {
	var out []Record
	err := v.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).ForEach(func(k, val []byte) error {
			var r Record
			if err := json.Unmarshal(val, &r); err != nil {
				return fmt.Errorf("meta for %q: %w", k, err)
			}
			r.Name = string(k)
			out = append(out, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes an enrollment.
func (v *Vault) Delete(name string) error {
	return v.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(helpersBucket).Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if err := tx.Bucket(helpersBucket).Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Delete([]byte(name))
	})
}
