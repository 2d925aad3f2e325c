package storage

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupManager snapshots the deck database.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a backup manager for the given database
// path.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// Backup writes an atomic snapshot of the database into dir (defaults
// to a "backups" sibling of the database) using VACUUM INTO, then
// verifies the snapshot opens as a usable SQLite database. Returns the
// backup file path.
func (bm *BackupManager) Backup(dir string) (string, error) {
	if dir == "" {
		dir = filepath.Join(filepath.Dir(bm.dbPath), "backups")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("decks-%s.db", time.Now().UTC().Format("20060102-150405"))
	dest := filepath.Join(dir, name)

	db, err := Open(&Config{Path: bm.dbPath, MaxOpenConns: 1, BusyTimeout: 5 * time.Second, JournalMode: "WAL"})
	if err != nil {
		return "", fmt.Errorf("open database for backup: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Conn().Exec(`VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("vacuum into backup: %w", err)
	}

	if err := bm.VerifyBackup(dest); err != nil {
		return "", fmt.Errorf("backup verification failed: %w", err)
	}
	return dest, nil
}

// VerifyBackup checks that the file at backupPath is a readable SQLite
// database containing the decks table.
func (bm *BackupManager) VerifyBackup(backupPath string) error {
	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		return fmt.Errorf("open backup as database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping backup database: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM decks`).Scan(&count); err != nil {
		return fmt.Errorf("query backup database: %w", err)
	}
	return nil
}

// Restore replaces the database file with the given backup. The caller
// must hold no open connections.
func (bm *BackupManager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("stat backup: %w", err)
	}

	src, err := os.Open(backupPath)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer func() { _ = src.Close() }()

	tmp := bm.dbPath + ".restore"
	dst, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create restore file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("copy backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close restore file: %w", err)
	}
	if err := os.Rename(tmp, bm.dbPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace database: %w", err)
	}
	return nil
}
