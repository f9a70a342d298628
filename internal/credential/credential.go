// Package credential supplies the backend API keys a job runs with.
package credential

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
)

// Credential is the set of API keys a single job is configured with. The
// first key is pinned for file operations; the rest are fallbacks for
// text-only calls that hit quota limits.
type Credential struct {
	APIKeys []string
}

// Provider answers whether a usable credential is available and hands it out.
type Provider interface {
	Available(ctx context.Context) bool
	Credential(ctx context.Context) (Credential, error)
}

type envSpec struct {
	APIKeys   []string `envconfig:"GEMINI_API_KEYS"`
	GoogleKey string   `envconfig:"GOOGLE_API_KEY"`
	GeminiKey string   `envconfig:"GEMINI_API_KEY"`
}

// Store resolves keys from the environment, with an optional temporary key
// set at runtime taking precedence.
type Store struct {
	mu        sync.RWMutex
	envKeys   []string
	temporary string
}

// FromEnv reads GEMINI_API_KEYS (comma separated), GEMINI_API_KEY and
// GOOGLE_API_KEY.
func FromEnv() (*Store, error) {
	var spec envSpec
	if err := envconfig.Process("", &spec); err != nil {
		return nil, fmt.Errorf("read credentials from env: %w", err)
	}

	keys := make([]string, 0, len(spec.APIKeys)+2)
	for _, k := range append(spec.APIKeys, spec.GeminiKey, spec.GoogleKey) {
		k = strings.TrimSpace(k)
		if k != "" && !contains(keys, k) {
			keys = append(keys, k)
		}
	}

	return &Store{envKeys: keys}, nil
}

// NewStatic returns a Store holding the given keys.
func NewStatic(keys ...string) *Store {
	return &Store{envKeys: keys}
}

// SetTemporary installs a key that overrides the environment until cleared
// with an empty string.
func (s *Store) SetTemporary(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temporary = strings.TrimSpace(key)
}

func (s *Store) Available(ctx context.Context) bool {
	_, err := s.Credential(ctx)
	return err == nil
}

func (s *Store) Credential(ctx context.Context) (Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.temporary != "" {
		return Credential{APIKeys: []string{s.temporary}}, nil
	}
	if len(s.envKeys) == 0 {
		return Credential{}, domain.NewStageError(domain.StageCredential, domain.ErrCredential,
			"no backend API key configured (set GEMINI_API_KEYS or GOOGLE_API_KEY)", nil)
	}

	keys := make([]string, len(s.envKeys))
	copy(keys, s.envKeys)
	return Credential{APIKeys: keys}, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
