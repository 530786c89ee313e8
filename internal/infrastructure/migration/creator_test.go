package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add budgets index", "add_budgets_index"},
		{"Add-Expense-Receipts", "add_expense_receipts"},
		{"ADD_FORECAST_NOTES", "add_forecast_notes"},
		{"add__ap__category", "add_ap_category"},
		{"Widen Amounts 2024", "widen_amounts_2024"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"café notes", "caf_notes"},
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
	now := time.Date(2024, time.July, 1, 9, 30, 15, 0, time.UTC)

	mf, err := CreateMigration(dir, "Add budget owner", now)
	require.NoError(t, err)

	assert.Equal(t, "20240701093015", mf.Version)
	assert.Equal(t, "add_budget_owner", mf.Name)
	assert.Equal(t, filepath.Join(dir, "20240701093015_add_budget_owner.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "20240701093015_add_budget_owner.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- add_budget_owner (up)"))

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(down)")
	assert.Contains(t, string(down), "2024-07-01T09:30:15Z")
}

func TestCreateMigration_Errors(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, time.July, 1, 9, 30, 15, 0, time.UTC)

	_, err := CreateMigration(dir, "!!!", now)
	assert.Error(t, err)

	_, err = CreateMigration(dir, "twice", now)
	require.NoError(t, err)
	_, err = CreateMigration(dir, "twice", now)
	assert.Error(t, err, "existing files are never overwritten")
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"20240701093015_add_owner.up.sql":   {},
		"20240701093015_add_owner.down.sql": {},
		"000001_create_users.up.sql":        {},
		"000001_create_users.down.sql":      {},
		"README.md":                         {},
	}

	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_users", "20240701093015_add_owner"}, names)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	fsys := Embedded()
	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		_, err := fsys.Open(name + ".down.sql")
		assert.NoError(t, err, "missing down migration for %s", name)
	}
}
