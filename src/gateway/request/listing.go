package request

type SetSalePrice struct {
	TokenID   uint64 `json:"token_id"`
	PriceGwei uint64 `json:"price_gwei"`
}

type SetForSale struct {
	TokenID      uint64 `json:"token_id"`
	ForSale      bool   `json:"for_sale"`
	ListingStart int64  `json:"listing_start"`
	ListingEnd   int64  `json:"listing_end"`
}
