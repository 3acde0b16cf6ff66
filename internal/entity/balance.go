package entity

// Balance counts the tokens currently held by one identity. The row is
// deleted when the count reaches zero; a missing row means zero.
type Balance struct {
	Base

	Owner  string `gorm:"primaryKey"`
	Amount int64
}
