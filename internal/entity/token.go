package entity

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/pkg/enum"
)

type SaleType string

var (
	SaleTypeFixedPrice = enum.New(SaleType("fixed_price"))
	SaleTypeAuction    = enum.New(SaleType("auction"))
)

// EmptyOwner is the hex form of the zero address. A token owned by it
// is still in the platform-held pool and can be claimed through the
// payment path.
var EmptyOwner = common.Address{}.Hex()

// Token is the canonical per-token record. Records are never deleted
// and an owner, once set, is never cleared again.
type Token struct {
	Base

	ID string `gorm:"primaryKey"`

	Owner       string `gorm:"index"`
	Name        string
	Description string
	ImageURL    string

	ForSale      bool
	AllowedBuyer string
	SaleType     SaleType
	SalePrice    int64
}

func (t *Token) OwnerAddress() common.Address {
	return common.HexToAddress(t.Owner)
}

func (t *Token) IsOwned() bool {
	return t.Owner != "" && t.Owner != EmptyOwner
}
