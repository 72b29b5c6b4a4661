package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add students table", "add_students_table"},
		{"Add-Students-Table", "add_students_table"},
		{"ADD_STUDENTS_TABLE", "add_students_table"},
		{"add__fee__ledgers", "add_fee_ledgers"},
		{"Exam Results 2", "exam_results_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add course tags", "Tags for course search")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_course_tags.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_course_tags.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add course tags")
	assert.Contains(t, string(up), "Tags for course search")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(down), "-- Rollback add course tags"))

	second, err := CreateMigration(dir, "index certificates", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)
}

func TestCreateMigration_ContinuesAfterHighestVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_existing.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_existing.down.sql"), nil, 0o644))

	mf, err := CreateMigration(dir, "next", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("lists up files once in order", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range []string{
			"000002_b.up.sql", "000002_b.down.sql",
			"000001_a.up.sql", "000001_a.down.sql",
			"README.md",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_a", "000002_b"}, names)
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := ListEmbedded()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"000001_create_academic",
		"000002_create_fees",
		"000003_create_exams",
		"000004_create_certificates",
	}, names)

	for _, n := range names {
		_, err := embedded.ReadFile("sql/" + n + ".down.sql")
		assert.NoError(t, err, "missing down migration for %s", n)
	}

	src, err := EmbeddedSource()
	require.NoError(t, err)
	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
	require.NoError(t, src.Close())
}
