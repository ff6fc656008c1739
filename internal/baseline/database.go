package baseline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/joshuapare/propkit/internal/config"
)

// OpenDB connects to the configured database and migrates the schema.
// Type "mysql" uses the host/port/user fields; anything else opens the
// SQLite file at Path.
func OpenDB(cfg *config.BaselineConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	sqliteDB := cfg.Type != "mysql"
	if sqliteDB {
		dialector = sqlite.Open(cfg.Path)
	} else {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s baseline database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if sqliteDB {
		// One connection keeps ":memory:" databases alive and serializes writes.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the snapshot tables.
func Migrate(db *gorm.DB, log logrus.FieldLogger) error {
	log.Debug("running baseline migrations")
	if err := db.AutoMigrate(&Snapshot{}, &SnapshotProperty{}); err != nil {
		return fmt.Errorf("migrate baseline schema: %w", err)
	}
	return nil
}
