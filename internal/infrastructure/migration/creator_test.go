package migration

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigrationWritesPair(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Sale Index")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{14}$`), mf.Version)
	assert.Regexp(t, regexp.MustCompile(`^\d{14}_add_sale_index\.up\.sql$`), filepath.Base(mf.UpPath))
	assert.Regexp(t, regexp.MustCompile(`^\d{14}_add_sale_index\.down\.sql$`), filepath.Base(mf.DownPath))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Sale Index")

	_, err = os.Stat(mf.DownPath)
	require.NoError(t, err)
}

func TestCreateMigrationCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Add Sale Index", "add_sale_index"},
		{"add-sale-index", "add_sale_index"},
		{"ADD  sale   index ", "add_sale_index"},
		{"drop/table;--", "droptable"},
		{"v2", "v2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.input), "name %q", tt.input)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "first")
	require.NoError(t, err)
	_, err = CreateMigration(dir, "second")
	require.NoError(t, err)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Contains(t, migrations, first.Version+"_first")
}

func TestListMigrationsMissingDirectory(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nowhere"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
