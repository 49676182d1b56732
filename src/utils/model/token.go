package model

import (
	"github.com/jackc/pgtype"
)

const TableToken = "tokens"

// Token holds one token id of one collection. Holder is filled for the
// single-edition kind, Balances for the multi-edition kind. A row may exist
// before the id is minted when sale metadata was set ahead of the mint.
type Token struct {
	CollectionAddress string `gorm:"primaryKey"`
	TokenID           uint64 `gorm:"primaryKey"`
	Uri               pgtype.Varchar
	Holder            pgtype.Varchar
	Amount            uint64
	Balances          pgtype.JSONB
	PriceGwei         uint64
	ForSale           bool
	ListingStart      int64
	ListingEnd        int64
}

func (Token) TableName() string {
	return TableToken
}
