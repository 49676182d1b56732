package model

import (
	"github.com/jackc/pgtype"
)

const (
	TableCollection = "collections"

	CollectionKindErc721  = "erc721"
	CollectionKindErc1155 = "erc1155"
)

type Collection struct {
	Address             string `gorm:"primaryKey"`
	Kind                string
	Creator             string
	Owner               string
	Name                pgtype.Varchar
	Symbol              pgtype.Varchar
	Description         pgtype.Varchar
	MaxSupply           uint64
	TotalMinted         uint64
	RoyaltyReceiver     pgtype.Varchar
	RoyaltyFeeNumerator uint64
}

func (Collection) TableName() string {
	return TableCollection
}
