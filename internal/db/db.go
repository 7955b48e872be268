package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/config"
	"github.com/jtsistemas/agenda-api/internal/models"
)

// NewDB abre a conexão e roda as migrações. A conexão é criada uma
// vez no boot e fechada no shutdown via Close.
func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.CompanyProfile{},
		&models.User{},
		&models.Position{},
		&models.Employee{},
		&models.Client{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.ServicePackage{},
		&models.PackageItem{},
		&models.Appointment{},
		&models.StatusChange{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	db.Exec(`
        UPDATE company_profiles
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.Timezone)

	return db
}

// Close devolve a conexão no shutdown do processo.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
