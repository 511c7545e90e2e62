package postgres

import (
	"fmt"

	"github.com/VitaminP8/gqltour/internal/config"
	"github.com/VitaminP8/gqltour/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"go.uber.org/zap"
)

// InitDB подключается к PostgreSQL по настройкам из конфига
func InitDB(cfg config.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
		cfg.SSLMode,
	)

	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	log.Info("successfully connected to the database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// Migrate создает таблицы users и posts
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Post{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Seed заполняет пустые таблицы стартовыми данными, непустые не трогает
func Seed(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("could not count users: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, u := range users {
			if err := tx.Create(u).Error; err != nil {
				return fmt.Errorf("could not seed user %d: %w", u.ID, err)
			}
		}
		for _, p := range posts {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("could not seed post %d: %w", p.ID, err)
			}
		}
		return nil
	})
}

// CloseDB закрывает соединение с базой данных
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	err := db.Close()
	if err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}
	return nil
}

func nextID(tx *gorm.DB, table interface{}) (int, error) {
	var maxID int
	row := tx.Model(table).Select("COALESCE(MAX(id), 0)").Row()
	if err := row.Scan(&maxID); err != nil {
		return 0, fmt.Errorf("could not compute next id: %w", err)
	}
	return maxID + 1, nil
}
