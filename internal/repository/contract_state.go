package repository

import (
	"context"

	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

type ContractStateRepository interface {
	Create(context.Context, *entity.ContractState) error
	Get(context.Context) (*entity.ContractState, error)
	Save(context.Context, *entity.ContractState) error
}

type contractStateRepository struct {
}

func NewContractStateRepository() *contractStateRepository {
	return &contractStateRepository{}
}

func (r *contractStateRepository) Create(ctx context.Context, state *entity.ContractState) error {
	state.ID = entity.ContractStateID
	return xcontext.DB(ctx).Create(state).Error
}

func (r *contractStateRepository) Get(ctx context.Context) (*entity.ContractState, error) {
	var result entity.ContractState
	err := xcontext.DB(ctx).Where("id = ?", entity.ContractStateID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *contractStateRepository) Save(ctx context.Context, state *entity.ContractState) error {
	state.ID = entity.ContractStateID
	return xcontext.DB(ctx).Save(state).Error
}
