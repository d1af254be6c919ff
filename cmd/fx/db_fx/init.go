package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tuitionledger/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}
