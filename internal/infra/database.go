package infra

import (
	"fmt"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the postgres connection, runs migrations and applies the
// schema patches gorm tags cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Translate driver errors so errors.Is(err, gorm.ErrDuplicatedKey)
		// works across the repositories.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("conectando a postgres: %w", err)
	}

	// pgcrypto provides gen_random_uuid on older postgres versions.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("habilitando pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Parqueadero{},
		&model.UsuarioParqueadero{},
		&model.Categoria{},
		&model.Cliente{},
		&model.MedioPago{},
		&model.Ticket{},
		&model.Caja{},
		&model.Mensualidad{},
	); err != nil {
		return nil, fmt.Errorf("migrando el esquema: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("aplicando parches de esquema: %w", err)
	}

	log.Info().Msg("base de datos lista")
	return db, nil
}

// applySchemaPatches runs the idempotent DDL that AutoMigrate cannot emit.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one open ticket per (parqueadero, placa). The partial
		// index only covers the open subset, so a plate can re-enter after
		// settling.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_placa_abierta
		   ON tickets (parqueadero_id, placa)
		   WHERE hora_salida IS NULL`,
	}
	for _, p := range patches {
		if err := db.Exec(p).Error; err != nil {
			return err
		}
	}
	return nil
}
