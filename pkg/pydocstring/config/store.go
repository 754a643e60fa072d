package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/ImGajeed76/pydocstring/pkg/pydocstring"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/console"
)

// Service namespaces the values pydocstring keeps in the keyring.
const Service = "pydocstring"

// StyleKey holds the preferred docstring style.
const StyleKey = "docstring_type"

// Store keeps user preferences in the system keyring.
type Store struct {
	service string
}

// NewStore creates a Store for the given service name.
func NewStore(service string) (*Store, error) {
	if service == "" {
		return nil, fmt.Errorf("service name cannot be empty")
	}
	return &Store{service: service}, nil
}

// Set stores a value in the keyring under the given key.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

// SetDefault stores value only when key has no value yet.
func (s *Store) SetDefault(key, value string) error {
	if s.Exists(key) {
		return nil
	}
	return s.Set(key, value)
}

// Get retrieves a value from the keyring by its key.
// Returns an empty string if the key doesn't exist.
func (s *Store) Get(key string) string {
	value, _ := s.Lookup(key)
	return value
}

// Lookup returns the value for key and whether it is set.
func (s *Store) Lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	value, err := keyring.Get(s.service, key)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Exists checks if a key exists in the keyring.
func (s *Store) Exists(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Delete removes a value. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := keyring.Delete(s.service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}

// DeleteAll removes all values stored under the service name.
func (s *Store) DeleteAll() error {
	return keyring.DeleteAll(s.service)
}

// Style returns the stored style preference.
func (s *Store) Style() (pydocstring.Style, bool) {
	name, ok := s.Lookup(StyleKey)
	if !ok {
		return pydocstring.NumPy, false
	}
	style, err := pydocstring.ParseStyle(name)
	if err != nil {
		return pydocstring.NumPy, false
	}
	return style, true
}

// SetStyle validates name and stores its canonical spelling.
func (s *Store) SetStyle(name string) (pydocstring.Style, error) {
	style, err := pydocstring.ParseStyle(name)
	if err != nil {
		return style, err
	}
	return style, s.Set(StyleKey, style.String())
}

// SetFromInput prompts the user for input and stores the value in the keyring.
func (s *Store) SetFromInput(key string, options console.InputOptions) (string, error) {
	value, err := console.Input(options)
	if err != nil {
		return "", err
	}

	if err := s.Set(key, value); err != nil {
		return "", err
	}
	return value, nil
}
