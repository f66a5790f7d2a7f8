package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "content", cfg.ContentDir)
	require.Equal(t, 30*time.Minute, cfg.Session.TTL)
	require.Equal(t, 10000, cfg.Session.MaxSessions)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	body := strings.Join([]string{
		"addr: \":9000\"",
		"site_name: Docs",
		"session:",
		"  ttl: 5m",
		"  max_sessions: 50",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("DOCSITE_SITE_NAME", "Env Docs")
	t.Setenv("DOCSITE_DEV", "true")
	t.Setenv("DOCSITE_SESSION__MAX_SESSIONS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)
	require.Equal(t, "Env Docs", cfg.SiteName)
	require.True(t, cfg.Dev)
	require.Equal(t, 5*time.Minute, cfg.Session.TTL)
	require.Equal(t, 7, cfg.Session.MaxSessions)
	require.Equal(t, "content", cfg.ContentDir, "untouched keys keep defaults")
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = ""
	cfg.LogLevel = "loud"
	cfg.Session.TTL = 0
	cfg.Session.HashKey = "not base64!"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	require.Contains(t, msg, "addr is required")
	require.Contains(t, msg, "invalid log_level")
	require.Contains(t, msg, "session.ttl")
	require.Contains(t, msg, "session.hash_key")
}

func TestSessionKeys(t *testing.T) {
	hash := make([]byte, 32)
	block := make([]byte, 16)
	s := Session{
		HashKey:  base64.StdEncoding.EncodeToString(hash),
		BlockKey: base64.StdEncoding.EncodeToString(block),
	}
	require.Len(t, s.DecodedHashKey(), 32)
	require.Len(t, s.DecodedBlockKey(), 16)

	require.Nil(t, Session{}.DecodedHashKey())

	cfg := DefaultConfig()
	cfg.Session.BlockKey = base64.StdEncoding.EncodeToString(make([]byte, 10))
	require.ErrorContains(t, cfg.Validate(), "unexpected key length 10")
}
