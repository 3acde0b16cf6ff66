package testutil

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/config"
	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/pkg/logger"
	"github.com/lunamints/nftledger/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		Contract: config.ContractConfigs{
			Symbol:                 "LUNAMINTS",
			Address:                ContractAddress.Hex(),
			UseSimpleSequentialIDs: true,
			Payment: config.PaymentConfigs{
				TokenAddress: PaymentTokenAddress.Hex(),
				MinAmount:    1,
				MaxAmount:    100,
			},
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithSender(sender common.Address) context.Context {
	return xcontext.WithRequestSender(MockContext(), sender)
}
