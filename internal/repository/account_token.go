package repository

import (
	"context"

	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

type AccountTokenRepository interface {
	Create(context.Context, *entity.AccountToken) error
	Delete(ctx context.Context, owner, tokenID string) error
	GetByOwner(context.Context, string) ([]entity.AccountToken, error)
}

type accountTokenRepository struct {
}

func NewAccountTokenRepository() *accountTokenRepository {
	return &accountTokenRepository{}
}

func (r *accountTokenRepository) Create(ctx context.Context, record *entity.AccountToken) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *accountTokenRepository) Delete(ctx context.Context, owner, tokenID string) error {
	return xcontext.DB(ctx).
		Where("owner = ? AND token_id = ?", owner, tokenID).
		Delete(&entity.AccountToken{}).Error
}

func (r *accountTokenRepository) GetByOwner(ctx context.Context, owner string) ([]entity.AccountToken, error) {
	var result []entity.AccountToken
	err := xcontext.DB(ctx).
		Where("owner = ?", owner).
		Order("token_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
