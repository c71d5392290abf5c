package repository

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

type PostgresDB struct {
	logger *logger.Logger

	Conn *gorm.DB
}

func NewPostgresDB(user, password, dbname, host string, port int, logger *logger.Logger) (*PostgresDB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)

	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %s", err)
	}

	if err := db.AutoMigrate(&models.Session{}, &models.DeliveryLink{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %s", err)
	}
	logger.Info("Successfully connected to PostgreSQL!")
	return &PostgresDB{Conn: db, logger: logger}, nil
}

func (db *PostgresDB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %s", err)
	}
	return sqlDB.Close()
}

func (db *PostgresDB) CreateSession(session *models.Session) error {
	if err := db.Conn.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %s", err)
	}

	return nil
}

func (db *PostgresDB) GetSession(id string) (*models.Session, error) {
	var session models.Session
	if err := db.Conn.Where("id = ?", id).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %s", err)
	}

	return &session, nil
}

func (db *PostgresDB) SaveSession(session *models.Session) error {
	if err := db.Conn.Save(session).Error; err != nil {
		return fmt.Errorf("failed to save session: %s", err)
	}

	return nil
}

func (db *PostgresDB) DeleteSession(id string) error {
	if err := db.Conn.Where("id = ?", id).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %s", err)
	}

	return nil
}

// RemoveStaleSessions deletes sessions older than the given timestamp.
// Disconnect is explicit in the client; this is the server-side sweep
// for sessions that were simply abandoned.
func (db *PostgresDB) RemoveStaleSessions(timestamp int64) error {
	if err := db.Conn.Where("created_at < ?", timestamp).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to remove stale sessions: %s", err)
	}

	return nil
}

func (db *PostgresDB) UpsertDeliveryLink(link *models.DeliveryLink) error {
	var existing models.DeliveryLink
	err := db.Conn.Where("address = ?", link.Address).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := db.Conn.Create(link).Error; err != nil {
			return fmt.Errorf("failed to create delivery link: %s", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get delivery link: %s", err)
	}

	existing.TelegramUsername = link.TelegramUsername
	existing.Email = link.Email
	if err := db.Conn.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update delivery link: %s", err)
	}

	return nil
}

func (db *PostgresDB) GetDeliveryLink(address string) (*models.DeliveryLink, error) {
	var link models.DeliveryLink
	if err := db.Conn.Where("address = ?", address).First(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to get delivery link: %s", err)
	}

	return &link, nil
}

func (db *PostgresDB) GetDeliveryLinkByTelegramUsername(username string) (*models.DeliveryLink, error) {
	var link models.DeliveryLink
	if err := db.Conn.Where("telegram_username = ?", username).First(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to get delivery link by telegram username: %s", err)
	}

	return &link, nil
}

func (db *PostgresDB) SetTelegramChatID(username, chatID string) error {
	if err := db.Conn.Model(&models.DeliveryLink{}).Where("telegram_username = ?", username).Update("telegram_chat_id", chatID).Error; err != nil {
		return fmt.Errorf("failed to set telegram chat ID: %s", err)
	}
	return nil
}
