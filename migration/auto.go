package migration

import (
	"context"

	"github.com/lunamints/nftledger/internal/entity"
)

func AutoMigrate(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
