// Package ssotoken reads and refreshes cached AWS IAM Identity Center
// tokens. The on-disk cache is the standard AWS CLI location
// (~/.aws/sso/cache) so tokens issued by other tools are reused; this
// component never initiates a login flow and never deletes cache files.
package ssotoken

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/sam-fakhreddine/aws-containers-sub004/models"
)

// memoryTTL bounds how long a token is served from memory before the disk
// cache is consulted again; other tools may rotate the file under us.
const memoryTTL = 30 * time.Second

// RefreshFunc exchanges a stored refresh token for a new access token.
type RefreshFunc func(ctx context.Context, token *models.SSOToken) (*models.SSOToken, error)

type Store struct {
	fs       afero.Fs
	cacheDir string
	refresh  RefreshFunc
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	memory map[string]memoryEntry
}

type memoryEntry struct {
	token    models.SSOToken
	cachedAt time.Time
}

func NewStore(fs afero.Fs, cacheDir string, refresh RefreshFunc, logger *slog.Logger) *Store {
	return &Store{
		fs:       fs,
		cacheDir: cacheDir,
		refresh:  refresh,
		logger:   logger,
		now:      time.Now,
		memory:   make(map[string]memoryEntry),
	}
}

// Token returns a usable token for the given SSO session name or start
// URL, or nil when none exists. An expired token without a refresh token
// is treated as absent; the user must log in out-of-band.
func (s *Store) Token(ctx context.Context, sessionName, startURL string) (*models.SSOToken, error) {
	key := sessionName
	if key == "" {
		key = startURL
	}
	if key == "" {
		return nil, nil
	}

	if tok := s.fromMemory(key); tok != nil {
		return tok, nil
	}

	tok := s.fromDisk(sessionName, startURL)
	if tok == nil {
		return nil, nil
	}

	if !tok.Valid(s.now()) {
		refreshed, err := s.tryRefresh(ctx, sessionName, tok)
		if err != nil {
			s.logger.Warn("sso token refresh failed", "session", sessionName, "err", err)
			return nil, nil
		}
		if refreshed == nil {
			return nil, nil
		}
		tok = refreshed
	}

	s.toMemory(key, tok)
	return tok, nil
}

func (s *Store) fromMemory(key string) *models.SSOToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.memory[key]
	if !ok {
		return nil
	}
	now := s.now()
	if now.Sub(e.cachedAt) >= memoryTTL || !e.token.Valid(now) {
		delete(s.memory, key)
		return nil
	}
	tok := e.token
	return &tok
}

func (s *Store) toMemory(key string, tok *models.SSOToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory[key] = memoryEntry{token: *tok, cachedAt: s.now()}
}

// fromDisk looks the token up by the AWS CLI cache key convention: the
// SHA1 of the sso-session name for session-based configs, the SHA1 of the
// start URL otherwise. A full directory scan is the slow-path fallback for
// cache files written under other keys.
func (s *Store) fromDisk(sessionName, startURL string) *models.SSOToken {
	for _, key := range []string{sessionName, startURL} {
		if key == "" {
			continue
		}
		if tok := s.readCacheFile(cacheFileName(key)); tok != nil {
			return tok
		}
	}

	if startURL == "" {
		return nil
	}
	entries, err := afero.ReadDir(s.fs, s.cacheDir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		tok := s.readCacheFile(entry.Name())
		if tok != nil && tok.StartURL == startURL {
			return tok
		}
	}
	return nil
}

func (s *Store) readCacheFile(name string) *models.SSOToken {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.cacheDir, name))
	if err != nil {
		return nil
	}
	var tok models.SSOToken
	if err := json.Unmarshal(data, &tok); err != nil {
		// Not every file in the cache dir is a token (client registrations
		// live there too); skip quietly.
		return nil
	}
	if tok.AccessToken == "" {
		return nil
	}
	return &tok
}

func (s *Store) tryRefresh(ctx context.Context, sessionName string, tok *models.SSOToken) (*models.SSOToken, error) {
	if s.refresh == nil || tok.RefreshToken == "" || tok.ClientID == "" || tok.ClientSecret == "" {
		return nil, nil
	}

	refreshed, err := s.refresh(ctx, tok)
	if err != nil {
		return nil, err
	}
	if err := s.persist(sessionName, refreshed); err != nil {
		return nil, fmt.Errorf("persist refreshed token: %w", err)
	}
	s.logger.Info("sso token refreshed", "session", sessionName, "expiresAt", refreshed.ExpiresAt)
	return refreshed, nil
}

// persist writes the token under the same cache key the CLI would use,
// via write-to-temp-then-rename so concurrent readers never observe a
// partial file.
func (s *Store) persist(sessionName string, tok *models.SSOToken) error {
	key := sessionName
	if key == "" {
		key = tok.StartURL
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}

	final := filepath.Join(s.cacheDir, cacheFileName(key))
	tmp := final + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return err
	}
	return s.fs.Rename(tmp, final)
}

func cacheFileName(key string) string {
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:]) + ".json"
}
