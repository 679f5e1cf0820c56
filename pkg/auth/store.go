// Package auth provides the credential store backing the HTTP API's basic
// auth. Credentials live in memory and are injected at construction; there
// is no global user table.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (time=1, memory=64MB, threads=4).
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var errMalformedHash = errors.New("malformed password hash")

// Store verifies usernames and passwords against argon2id hashes.
type Store struct {
	mu    sync.RWMutex
	users map[string]string // username -> encoded hash
}

// NewStore returns an empty credential store.
func NewStore() *Store {
	return &Store{users: make(map[string]string)}
}

// AddUser hashes the password and registers the user, replacing any
// existing entry for the same username.
func (s *Store) AddUser(username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password for %q: %w", username, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = hash
	return nil
}

// Verify reports whether the username exists and the password matches.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Store) Verify(username, password string) bool {
	s.mu.RLock()
	hash, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	match, err := verifyPassword(password, hash)
	return err == nil && match
}

// HashPassword produces an encoded argon2id hash in the standard
// $argon2id$v=19$m=...,t=...,p=...$salt$hash format.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

func verifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false, errMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, errMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
