package migration

import (
	"errors"
	"strings"

	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion represents the current database schema version
const CurrentSchemaVersion = "1.0.0"

// Manager applies the schema migrations at startup
type Manager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewManager creates a migration manager
func NewManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll brings the schema to the current version
func (m *Manager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.SchemaVersion{}); err != nil {
		return err
	}

	current, err := m.currentVersion()
	if err != nil {
		return err
	}
	if current == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": current,
		})
		return nil
	}

	if err := m.db.AutoMigrate(&model.User{}, &model.Transaction{}); err != nil {
		m.logger.Error("Failed to migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Cash may never end up negative after a commit; the engine checks
	// first, the constraint backstops it.
	if err := m.db.Exec(
		"ALTER TABLE users ADD CONSTRAINT chk_users_cash_non_negative CHECK (cash >= 0)",
	).Error; err != nil && !isDuplicateObjectError(err) {
		m.logger.Warn("Could not add cash check constraint", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.recordVersion(CurrentSchemaVersion); err != nil {
		return err
	}

	m.logger.Info("Database migrations completed", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// currentVersion reads the most recently applied schema version, empty
// when the database is fresh
func (m *Manager) currentVersion() (string, error) {
	var version model.SchemaVersion
	err := m.db.Order("id DESC").First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return version.Version, nil
}

func (m *Manager) recordVersion(version string) error {
	return m.db.Create(&model.SchemaVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
	}).Error
}

func isDuplicateObjectError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate")
}
