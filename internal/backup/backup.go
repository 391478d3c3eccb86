// Package backup keeps rotating, timestamped copies of the local data file.
// SQLite databases are copied with VACUUM INTO; JSON documents byte for byte.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
)

const timestampFormat = "20060102-150405"

// MaxBackups is the number of backups kept after rotation
const MaxBackups = constants.MaxBackups

// BackupInfo describes one backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
	seq       int
}

// Manager handles backup operations for one data file
type Manager struct {
	dataPath  string
	backupDir string
	suffix    string
	now       func() time.Time
}

// NewManager creates a manager writing to a backups directory next to
// dataPath
func NewManager(dataPath string) *Manager {
	suffix := filepath.Ext(dataPath)
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), constants.BackupDirName),
		suffix:    suffix,
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) isSQLite() bool {
	return m.suffix != ".json"
}

// CreateBackup copies the data file and prunes backups beyond MaxBackups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation for the safety copy taken before a restore
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		err = vacuumInto(m.dataPath, backupPath)
	} else {
		err = copyFile(m.dataPath, backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", m.dataPath, err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextBackupPath names the backup after the current second, adding a
// counter when several backups land in the same second
func (m *Manager) nextBackupPath() (string, error) {
	stamp := m.now().Format(timestampFormat)
	base := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp)

	path := base + m.suffix
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = fmt.Sprintf("%s-%d%s", base, counter, m.suffix)
	}
}

func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		return copyFile(src, dst)
	}
	return nil
}

// parseName extracts the timestamp and same-second counter from a backup
// file name
func (m *Manager) parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix)

	seq := 0
	if len(stamp) > len(timestampFormat) && stamp[len(timestampFormat)] == '-' {
		n, err := strconv.Atoi(stamp[len(timestampFormat)+1:])
		if err != nil {
			return time.Time{}, 0, false
		}
		seq = n
		stamp = stamp[:len(timestampFormat)]
	}

	ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, seq, true
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
			seq:       seq,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].seq > backups[j].seq
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data file with backupPath. The current file is
// backed up first; that safety copy's path is returned ("" when there was
// nothing to save).
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if _, err := os.Stat(m.dataPath); err == nil {
		safety, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to back up current data before restore: %w", err)
		}
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return safety, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return safety, fmt.Errorf("failed to restore data file: %w", err)
	}
	return safety, nil
}

func (m *Manager) verifyBackup(path string) error {
	if !m.isSQLite() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return fmt.Errorf("not a JSON document")
		}
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
