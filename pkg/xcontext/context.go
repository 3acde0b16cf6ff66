package xcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/config"
	"github.com/lunamints/nftledger/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey   struct{}
	loggerKey    struct{}
	dbKey        struct{}
	dbTxKey      struct{}
	snowflakeKey struct{}
	senderKey    struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.SILENCE)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database transaction if one was opened with
// WithDBTransaction, otherwise the root gorm.DB.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok {
		return tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db
}

func WithDBTransaction(ctx context.Context) context.Context {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	return context.WithValue(ctx, dbTxKey{}, db.Begin())
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	tx.Commit()
	return context.WithValue(ctx, dbTxKey{}, nil)
}

// WithRollbackDBTransaction is a no-op if the transaction was already
// committed in this context chain.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB)
	if !ok || tx == nil {
		return ctx
	}

	tx.Rollback()
	return context.WithValue(ctx, dbTxKey{}, nil)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, ok := ctx.Value(snowflakeKey{}).(*snowflake.Node)
	if !ok {
		return nil
	}

	return node
}

// WithRequestSender records the identity the platform verified as the
// sender of the current transaction.
func WithRequestSender(ctx context.Context, sender common.Address) context.Context {
	return context.WithValue(ctx, senderKey{}, sender)
}

func RequestSender(ctx context.Context) common.Address {
	sender, ok := ctx.Value(senderKey{}).(common.Address)
	if !ok {
		return common.Address{}
	}

	return sender
}
