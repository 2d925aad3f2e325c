package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(DefaultConfig(":memory:"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, db.Ping())

	// The schema is in place: the decks table is queryable.
	var count int
	err = db.Conn().QueryRow(`SELECT COUNT(*) FROM decks`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOpen_NilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "decks.db")
	db, err := Open(DefaultConfig(path))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, db.Ping())
}

func TestBackupManager(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "decks.db")
	db, err := Open(DefaultConfig(dbPath))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	bm := NewBackupManager(dbPath)
	backupPath, err := bm.Backup("")
	require.NoError(t, err)
	assert.FileExists(t, backupPath)

	require.NoError(t, bm.Restore(backupPath))

	restored, err := Open(DefaultConfig(dbPath))
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()
	assert.NoError(t, restored.Ping())
}

func TestVerifyBackup_ValidBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "decks.db")
	db, err := Open(DefaultConfig(dbPath))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	bm := NewBackupManager(dbPath)
	backupPath, err := bm.Backup("")
	require.NoError(t, err)

	assert.NoError(t, bm.VerifyBackup(backupPath))
}

func TestVerifyBackup_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.db")
	require.NoError(t, os.WriteFile(garbage, []byte("not a sqlite database"), 0o644))

	bm := NewBackupManager(filepath.Join(dir, "decks.db"))
	assert.Error(t, bm.VerifyBackup(garbage))
}

func TestVerifyBackup_MissingSchema(t *testing.T) {
	// An empty but valid SQLite file without the decks table fails
	// verification.
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.db")
	db, err := Open(&Config{Path: empty, MaxOpenConns: 1, BusyTimeout: 5 * time.Second, JournalMode: "WAL"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	bm := NewBackupManager(filepath.Join(dir, "decks.db"))
	assert.Error(t, bm.VerifyBackup(empty))
}
