package entity

// AccountToken marks that a token belongs to an owner. Present exactly
// when the token record names that owner, enabling per-owner
// enumeration without scanning the token table.
type AccountToken struct {
	Base

	Owner   string `gorm:"primaryKey"`
	TokenID string `gorm:"primaryKey"`
}
