package repository

import (
	"context"

	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

type EventRepository interface {
	Create(context.Context, *entity.EventLog) error
	GetByTokenID(context.Context, string) ([]entity.EventLog, error)
}

type eventRepository struct {
}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.EventLog) error {
	return xcontext.DB(ctx).Create(event).Error
}

func (r *eventRepository) GetByTokenID(ctx context.Context, tokenID string) ([]entity.EventLog, error) {
	var result []entity.EventLog
	err := xcontext.DB(ctx).
		Where("token_id = ?", tokenID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
