// seedlot creates a demo parqueadero with its owner, base tariffs and the
// cash payment method, for local development.
package main

import (
	"context"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/config"
	"github.com/ferrosero91/parking-solupark/internal/infra"
	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargando la configuración")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializando la base de datos")
	}

	ctx := context.Background()
	if err := seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("sembrando los datos de demostración")
	}
	log.Info().Msg("datos de demostración listos (admin / admin123)")
}

func seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existente model.Usuario
		if err := tx.First(&existente, "username = ?", "admin").Error; err == nil {
			log.Info().Msg("el usuario admin ya existe, nada que hacer")
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := model.Usuario{
			Username:     "admin",
			Nombre:       "Administrador",
			PasswordHash: string(hash),
			Rol:          "administrador",
			Activo:       true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		inicio := time.Now()
		fin := inicio.AddDate(1, 0, 0)
		lote := model.Parqueadero{
			UsuarioID:         admin.ID,
			Empresa:           "Parqueadero Demo",
			Telefono:          "3000000000",
			Direccion:         "Calle 1 # 2-3",
			Activo:            true,
			SuscripcionInicio: &inicio,
			SuscripcionFin:    &fin,
			EstadoPago:        model.PagoPagado,
		}
		if err := tx.Create(&lote).Error; err != nil {
			return err
		}

		mensual := decimal.NewFromInt(80000)
		categorias := []model.Categoria{
			{
				ParqueaderoID: lote.ID,
				Nombre:        "Carro",
				PrimeraHora:   decimal.NewFromInt(3000),
				HoraAdicional: decimal.NewFromInt(2000),
			},
			{
				ParqueaderoID: lote.ID,
				Nombre:        "Moto",
				PrimeraHora:   decimal.NewFromInt(2000),
				HoraAdicional: decimal.NewFromInt(1000),
			},
			{
				ParqueaderoID: lote.ID,
				Nombre:        "Carro mensual",
				PrimeraHora:   decimal.NewFromInt(3000),
				HoraAdicional: decimal.NewFromInt(2000),
				EsMensual:     true,
				TarifaMensual: &mensual,
			},
		}
		if err := tx.Create(&categorias).Error; err != nil {
			return err
		}

		efectivo := model.MedioPago{
			ParqueaderoID: lote.ID,
			Nombre:        "Efectivo",
			EsEfectivo:    true,
			Activo:        true,
			Orden:         0,
		}
		return tx.Create(&efectivo).Error
	})
}
