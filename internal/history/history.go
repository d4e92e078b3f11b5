package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Outcome records what happened to a submitted line.
type Outcome string

const (
	OutcomePending Outcome = ""
	OutcomeOK      Outcome = "ok"
	OutcomeError   Outcome = "error"
	OutcomeCommand Outcome = "command"
)

type HistoryManager struct {
	db         *gorm.DB
	schemaPath string
}

type HistoryEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Line      string
	SessionID string `gorm:"index"`
	Outcome   Outcome
}

const (
	historySchemaVersion = 1
)

// NewHistoryManager opens (creating if needed) the sqlite history database at
// dbFilePath. The schema version marker is kept next to the database file.
func NewHistoryManager(dbFilePath string) (*HistoryManager, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("error checking history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening history db: %w", err)
	}

	historyManager := &HistoryManager{
		db:         db,
		schemaPath: filepath.Join(filepath.Dir(dbFilePath), "history_schema_version"),
	}

	if historyManager.needsMigration(dbFileExists) {
		if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
			_ = historyManager.Close()
			return nil, fmt.Errorf("error auto-migrating history schema: %w", err)
		}
		if err := historyManager.writeSchemaVersion(historySchemaVersion); err != nil {
			_ = historyManager.Close()
			return nil, fmt.Errorf("error writing history schema version: %w", err)
		}
	}

	return historyManager, nil
}

func (historyManager *HistoryManager) needsMigration(dbFileExists bool) bool {
	if !dbFileExists {
		return true
	}

	versionMatches, err := historyManager.schemaVersionMatches()
	if err != nil || !versionMatches {
		return true
	}

	// The marker can outlive the table if the database was edited by hand.
	return !historyManager.db.Migrator().HasTable(&HistoryEntry{})
}

func (historyManager *HistoryManager) writeSchemaVersion(version int) error {
	return os.WriteFile(historyManager.schemaPath, []byte(strconv.Itoa(version)), 0644)
}

func (historyManager *HistoryManager) schemaVersionMatches() (bool, error) {
	data, err := os.ReadFile(historyManager.schemaPath)
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != historySchemaVersion {
		return false, fmt.Errorf("history schema version mismatch: got %d, want %d", version, historySchemaVersion)
	}
	return true, nil
}

// StartLine records a submitted line before it is acted on.
func (historyManager *HistoryManager) StartLine(line string, sessionID string) (*HistoryEntry, error) {
	entry := HistoryEntry{
		Line:      line,
		SessionID: sessionID,
	}

	result := historyManager.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// FinishLine stores the outcome of a previously started line.
func (historyManager *HistoryManager) FinishLine(entry *HistoryEntry, outcome Outcome) (*HistoryEntry, error) {
	entry.Outcome = outcome

	result := historyManager.db.Save(entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return entry, nil
}

// GetRecentEntries returns up to limit entries, oldest first. An empty
// sessionID selects entries from every session.
func (historyManager *HistoryManager) GetRecentEntries(sessionID string, limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	var db = historyManager.db
	if sessionID != "" {
		db = db.Where("session_id = ?", sessionID)
	}
	result := db.Order("created_at desc").Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(entries)
	return entries, nil
}

// RecentLines returns the text of up to limit recent entries, oldest first,
// with consecutive duplicates collapsed.
func (historyManager *HistoryManager) RecentLines(limit int) ([]string, error) {
	entries, err := historyManager.GetRecentEntries("", limit)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if n := len(lines); n > 0 && lines[n-1] == e.Line {
			continue
		}
		lines = append(lines, e.Line)
	}
	return lines, nil
}

func (historyManager *HistoryManager) DeleteEntry(id uint) error {
	result := historyManager.db.Delete(&HistoryEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}

	return nil
}

func (historyManager *HistoryManager) ResetHistory() error {
	return historyManager.db.Exec("DELETE FROM history_entries").Error
}

// SearchHistory searches for history entries containing the given substring.
// Returns entries in reverse chronological order (most recent first).
func (historyManager *HistoryManager) SearchHistory(query string, limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	result := historyManager.db.Where("line LIKE ?", "%"+query+"%").
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Close releases the underlying database handle.
func (historyManager *HistoryManager) Close() error {
	sqlDB, err := historyManager.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
