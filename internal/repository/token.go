package repository

import (
	"context"

	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

type TokenRepository interface {
	Create(context.Context, *entity.Token) error
	GetByID(context.Context, string) (*entity.Token, error)
	Save(context.Context, *entity.Token) error
}

type tokenRepository struct {
}

func NewTokenRepository() *tokenRepository {
	return &tokenRepository{}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.Token) error {
	return xcontext.DB(ctx).Create(token).Error
}

func (r *tokenRepository) GetByID(ctx context.Context, id string) (*entity.Token, error) {
	var result entity.Token
	err := xcontext.DB(ctx).Where("id = ?", id).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *tokenRepository) Save(ctx context.Context, token *entity.Token) error {
	return xcontext.DB(ctx).Save(token).Error
}
