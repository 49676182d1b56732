package request

type Mint struct {
	To      string `json:"to" binding:"required"`
	TokenID uint64 `json:"token_id"`

	// Ignored by single-edition collections, defaults to 1 otherwise
	Amount uint64 `json:"amount"`

	Uri string `json:"uri"`
}

type MintBatch struct {
	To       string   `json:"to" binding:"required"`
	TokenIDs []uint64 `json:"token_ids" binding:"required"`
	Amounts  []uint64 `json:"amounts" binding:"required"`
	Uris     []string `json:"uris" binding:"required"`
}
