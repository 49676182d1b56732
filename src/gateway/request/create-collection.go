package request

type CreateCollection struct {
	Name                string `json:"name" binding:"required"`
	Symbol              string `json:"symbol" binding:"required"`
	Description         string `json:"description"`
	MaxSupply           uint64 `json:"max_supply" binding:"required"`
	RoyaltyFeeNumerator uint64 `json:"royalty_fee_numerator"`
}
