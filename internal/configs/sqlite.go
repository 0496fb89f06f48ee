package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-board.com/task-board/internal/models"
)

// sqliteParams are appended to the DSN unless already present. Immediate
// transactions take the write lock at BEGIN, so concurrent reorders in the
// same board queue up instead of shifting from a stale read.
var sqliteParams = []string{
	"_txlock=immediate",
	"_busy_timeout=5000",
	"_foreign_keys=on",
}

func SQLiteDSN(dsn string) string {
	var missing []string
	for _, p := range sqliteParams {
		key := p[:strings.Index(p, "=")+1]
		if !strings.Contains(dsn, key) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

func NewDatabase(dsn string, silent bool) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(SQLiteDSN(dsn)), cfg)
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
