// Package backup keeps timestamped copies of the local store next to it and
// restores them.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-ps"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/logger"
)

const (
	minuteStamp = "20060102-1504"
	secondStamp = "20060102-150405"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// HumanSize formats the file size, e.g. "82 kB".
func (b BackupInfo) HumanSize() string {
	return humanize.Bytes(uint64(b.Size))
}

// Age formats how long ago the backup was taken, e.g. "3 hours ago".
func (b BackupInfo) Age() string {
	return humanize.Time(b.Timestamp)
}

// Manager handles backup operations for one store file. JSON stores are
// copied verbatim; SQLite stores are compacted with VACUUM INTO.
type Manager struct {
	dbPath    string
	backupDir string
	suffix    string
	now       func() time.Time
	processes func() ([]ps.Process, error)
}

// NewManager creates a new backup manager
func NewManager(dbPath string) *Manager {
	suffix := strings.ToLower(filepath.Ext(dbPath))
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		suffix:    suffix,
		now:       time.Now,
		processes: ps.Processes,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) isJSON() bool {
	return m.suffix == ".json"
}

// CreateBackup creates a new backup of the store and prunes the oldest ones
// beyond constants.MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup skips rotation when called from a restore so the
// pre-restore copy never evicts the backup being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if m.isJSON() {
		err = m.backupJSON(backupPath)
	} else {
		err = m.backupDatabase(backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Info("Backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextBackupPath uses minute precision, falling back to seconds and then a
// counter when the name is taken.
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	path := m.backupName(now.Format(minuteStamp))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format(secondStamp)
	path = m.backupName(stamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.backupName(fmt.Sprintf("%s-%d", stamp, counter))
	}
}

func (m *Manager) backupName(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.suffix)
}

func (m *Manager) backupDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		srcDB.Close()
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

func (m *Manager) backupJSON(destPath string) error {
	if err := verifyJSON(m.dbPath); err != nil {
		return fmt.Errorf("source document appears to be corrupted: %w", err)
	}
	return copyFile(m.dbPath, destPath)
}

// ListBackups returns all available backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}
		timestamp, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseStamp reads YYYYMMDD-HHMM or YYYYMMDD-HHMMSS with an optional
// -N counter suffix.
func parseStamp(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) == 3 {
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{minuteStamp, secondStamp} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}
	return nil
}

// RestoreBackup replaces the store with backupPath. The current store is
// backed up first. Restoring is refused while another dietplan process is
// running, since it may hold the store open.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if err := m.ensureNoOtherInstance(); err != nil {
		return "", err
	}

	var current string
	if _, err := os.Stat(m.dbPath); err == nil {
		current, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("Backup restored", "from", backupPath, "previous", current)
	return current, nil
}

// ensureNoOtherInstance fails when another process running the dietplan
// executable is found.
func (m *Manager) ensureNoOtherInstance() error {
	procs, err := m.processes()
	if err != nil {
		logger.Warn("Could not list processes, skipping running-instance check", "error", err)
		return nil
	}
	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		exe := strings.TrimSuffix(p.Executable(), ".exe")
		if exe == constants.AppName {
			return fmt.Errorf("%s is running as PID %d, close it before restoring", constants.AppName, p.Pid())
		}
	}
	return nil
}

func (m *Manager) verifyBackup(path string) error {
	if m.isJSON() {
		return verifyJSON(path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyJSON(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return err
	}
	if doc.Version < 1 {
		return fmt.Errorf("missing document version")
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
