package repository

import (
	"context"

	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

type BalanceRepository interface {
	Create(context.Context, *entity.Balance) error
	Get(context.Context, string) (*entity.Balance, error)
	Save(context.Context, *entity.Balance) error
	Delete(context.Context, string) error
}

type balanceRepository struct {
}

func NewBalanceRepository() *balanceRepository {
	return &balanceRepository{}
}

func (r *balanceRepository) Create(ctx context.Context, balance *entity.Balance) error {
	return xcontext.DB(ctx).Create(balance).Error
}

func (r *balanceRepository) Get(ctx context.Context, owner string) (*entity.Balance, error) {
	var result entity.Balance
	err := xcontext.DB(ctx).Where("owner = ?", owner).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *balanceRepository) Save(ctx context.Context, balance *entity.Balance) error {
	return xcontext.DB(ctx).Save(balance).Error
}

func (r *balanceRepository) Delete(ctx context.Context, owner string) error {
	return xcontext.DB(ctx).Where("owner = ?", owner).Delete(&entity.Balance{}).Error
}
