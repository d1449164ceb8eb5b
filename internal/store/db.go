package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// LocalOwner is the owner used by the single-user terminal client.
const LocalOwner = "local"

// Database wraps the GORM DB handle and exposes preference helpers.
type Database struct {
	gorm  *gorm.DB
	mu    sync.Mutex
	owner string
}

// Open initializes the SQLite-backed database at the provided path, creating
// its parent directory when needed.
func Open(path string, silent bool) (*Database, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("db path required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if path != ":memory:" {
		if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			logrus.WithError(err).Warn("enable WAL mode")
		}
	}
	return &Database{gorm: db, owner: LocalOwner}, nil
}

// WithOwner returns a view of the database scoped to another owner.
func (d *Database) WithOwner(owner string) *Database {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = LocalOwner
	}
	return &Database{gorm: d.gorm, owner: owner}
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetPreference returns the stored value for key and whether it exists.
func (d *Database) GetPreference(ctx context.Context, key string) (string, bool, error) {
	if d == nil {
		return "", false, errors.New("database is nil")
	}
	var pref Preference
	err := d.gorm.WithContext(ctx).
		Where("owner = ? AND name = ?", d.owner, key).
		Take(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return pref.Value, true, nil
}

// SetPreference inserts or updates the value for key.
func (d *Database) SetPreference(ctx context.Context, key, value string) error {
	if d == nil {
		return errors.New("database is nil")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("preference key required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	pref := &Preference{Owner: d.owner, Name: key, Value: value}
	err := d.gorm.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
