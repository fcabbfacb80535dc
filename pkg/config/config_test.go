package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.TextStore.Backend)
	assert.Equal(t, 512, cfg.Search.MaxQueryDepth)
	assert.Equal(t, "Hybrid", cfg.Search.DefaultStrategy)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retrieval.yaml")
	body := `
corpus:
  path: /data/enwiki-100.txt
textStore:
  backend: postgres
search:
  maxQueryDepth: 64
redis:
  cacheTTL: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("RS_SEARCH_MAX_QUERY_DEPTH", "128")
	t.Setenv("RS_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/enwiki-100.txt", cfg.Corpus.Path)
	assert.Equal(t, "postgres", cfg.TextStore.Backend)
	assert.Equal(t, 128, cfg.Search.MaxQueryDepth)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("RS_TEXTSTORE_BACKEND", "s3")

	_, err := Load("")
	assert.ErrorContains(t, err, "textStore.backend")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", p.DSN())
}
