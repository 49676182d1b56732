package response

import (
	"nftfactory/src/registry"
)

type Token struct {
	TokenID uint64 `json:"token_id"`
	Uri     string `json:"uri,omitempty"`
	Minted  bool   `json:"minted"`

	// Single-edition holder
	Holder string `json:"holder,omitempty"`

	// Multi-edition supply
	Supply uint64 `json:"supply,omitempty"`

	PriceGwei    uint64 `json:"price_gwei"`
	ForSale      bool   `json:"for_sale"`
	ListingStart int64  `json:"listing_start,omitempty"`
	ListingEnd   int64  `json:"listing_end,omitempty"`
}

func TokenToResponse(col registry.TokenRegistry, tokenID uint64) *Token {
	listing := col.Listing(tokenID)
	out := &Token{
		TokenID:      tokenID,
		PriceGwei:    listing.PriceGwei,
		ForSale:      listing.ForSale,
		ListingStart: listing.ListingStart,
		ListingEnd:   listing.ListingEnd,
	}
	out.Uri, _ = col.TokenURI(tokenID)

	switch v := col.(type) {
	case *registry.Collection721:
		if holder, ok := v.OwnerOf(tokenID); ok {
			out.Holder = string(holder)
			out.Minted = true
		}
	case *registry.Collection1155:
		out.Supply = v.TokenSupply(tokenID)
		out.Minted = out.Supply > 0
	}
	return out
}

type Royalty struct {
	Receiver    string `json:"receiver,omitempty"`
	RoyaltyGwei uint64 `json:"royalty_gwei"`
}
