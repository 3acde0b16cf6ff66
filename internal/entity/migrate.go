package entity

import (
	"context"

	"github.com/lunamints/nftledger/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Token{},
		&Balance{},
		&AccountToken{},
		&ContractState{},
		&EventLog{},
	)
}
