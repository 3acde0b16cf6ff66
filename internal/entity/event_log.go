package entity

import "github.com/lunamints/nftledger/pkg/enum"

type EventName string

var (
	EventNewTokenCreated = enum.New(EventName("NewTokenCreated"))
	EventTransfer        = enum.New(EventName("Transfer"))
)

// EventLog persists every emitted notification in the same database
// transaction as the mutation it describes, so a rolled back operation
// leaves no event behind.
type EventLog struct {
	Base

	ID int64 `gorm:"primaryKey"`

	Name    EventName
	TokenID string
	From    string
	To      string
	Amount  int64
	Payload Map
}
