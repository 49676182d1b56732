package response

import (
	"nftfactory/src/registry"
)

type Collection struct {
	Address             string `json:"address"`
	Kind                string `json:"kind"`
	Creator             string `json:"creator,omitempty"`
	Owner               string `json:"owner"`
	Name                string `json:"name"`
	Symbol              string `json:"symbol"`
	Description         string `json:"description"`
	MaxSupply           uint64 `json:"max_supply"`
	TotalMinted         uint64 `json:"total_minted"`
	RoyaltyReceiver     string `json:"royalty_receiver,omitempty"`
	RoyaltyFeeNumerator uint64 `json:"royalty_fee_numerator"`
}

func CollectionToResponse(col registry.TokenRegistry, creator registry.Address) *Collection {
	snap := col.Snapshot()
	out := &Collection{
		Address:             string(snap.Address),
		Kind:                string(snap.Kind),
		Creator:             string(creator),
		Owner:               string(snap.Owner),
		Name:                snap.Name,
		Symbol:              snap.Symbol,
		Description:         snap.Description,
		MaxSupply:           snap.MaxSupply,
		TotalMinted:         snap.TotalMinted,
		RoyaltyFeeNumerator: snap.RoyaltyFeeNumerator,
	}
	if !snap.RoyaltyReceiver.IsZero() {
		out.RoyaltyReceiver = string(snap.RoyaltyReceiver)
	}
	return out
}

type CollectionSummary struct {
	Address     string `json:"address"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	TotalMinted uint64 `json:"total_minted"`
	MaxSupply   uint64 `json:"max_supply"`
}

type GetCollections struct {
	Collections []CollectionSummary `json:"collections"`
}
