package textstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorePutGet(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "articles")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, 7, Join([]string{"let", "it", "be"})))

	assert.Equal(t, filepath.Join(dir, "00000007.txt"), s.Path(7))
	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "let it be", got)

	require.NoError(t, s.Put(ctx, 7, "let it go"))
	got, err = s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "let it go", got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStoreMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), 3)
	assert.ErrorIs(t, err, apperrors.ErrArticleTextMissing)
}

func TestPostgresStoreIntegration(t *testing.T) {
	dsn := os.Getenv("RS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("RS_TEST_POSTGRES_DSN not set")
	}
	db, runner := openTestDB(t, dsn)
	ctx := context.Background()
	s := NewPostgresStore(db, runner)
	require.NoError(t, s.EnsureSchema(ctx))

	require.NoError(t, s.Put(ctx, 1_000_001, "word1 word2 word3"))
	require.NoError(t, s.Flush(ctx))

	got, err := s.Get(ctx, 1_000_001)
	require.NoError(t, err)
	assert.Equal(t, "word1 word2 word3", got)

	_, err = s.Get(ctx, -1)
	assert.ErrorIs(t, err, apperrors.ErrArticleTextMissing)
}
