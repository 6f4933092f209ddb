package denylist

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrUnavailable wraps every backend failure.
var ErrUnavailable = errors.New("denylist unavailable")

// Checker reports whether a candidate password is known to be compromised.
type Checker interface {
	Contains(ctx context.Context, candidate string) (bool, error)
}

// Fingerprint is the stored form of a candidate: SHA-256 hex of its lower-cased text.
func Fingerprint(candidate string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(candidate)))
	return hex.EncodeToString(sum[:])
}

// Memory is an in-process denylist. The zero value is empty and ready to use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]struct{}
}

// NewMemory returns a Memory holding words.
func NewMemory(words ...string) *Memory {
	m := &Memory{}
	m.Add(words...)
	return m
}

// Add inserts words. Matching ignores case.
func (m *Memory) Add(words ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries == nil {
		m.entries = make(map[string]struct{}, len(words))
	}
	for _, w := range words {
		m.entries[Fingerprint(w)] = struct{}{}
	}
}

// Remove deletes words if present.
func (m *Memory) Remove(words ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range words {
		delete(m.entries, Fingerprint(w))
	}
}

// Contains never fails.
func (m *Memory) Contains(_ context.Context, candidate string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[Fingerprint(candidate)]
	return ok, nil
}

// Size returns the number of distinct entries.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ReadWords parses one word per line, skipping blank lines and lines starting
// with '#'. Surrounding whitespace is trimmed.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
