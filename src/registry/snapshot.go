package registry

import (
	"golang.org/x/exp/slices"
)

// TokenSnapshot is the persistable view of one token id: issuance state plus
// sale metadata. A snapshot may exist for an unminted id when the owner set
// listing metadata ahead of the mint.
type TokenSnapshot struct {
	TokenID      uint64
	URI          string
	Holder       Address
	Amount       uint64
	Balances     map[Address]uint64
	PriceGwei    uint64
	ForSale      bool
	ListingStart int64
	ListingEnd   int64
}

func (self *TokenSnapshot) fillListing(listing *TokenListing) {
	if listing == nil {
		return
	}
	self.PriceGwei = listing.PriceGwei
	self.ForSale = listing.ForSale
	self.ListingStart = listing.ListingStart
	self.ListingEnd = listing.ListingEnd
}

func (self *TokenSnapshot) hasListing() bool {
	return self.PriceGwei != 0 || self.ForSale || self.ListingStart != 0 || self.ListingEnd != 0
}

// CollectionSnapshot carries the whole state of one deployed registry,
// used to rebuild registries from storage after a restart.
type CollectionSnapshot struct {
	Address             Address
	Kind                CollectionKind
	Creator             Address
	Owner               Address
	Name                string
	Symbol              string
	Description         string
	MaxSupply           uint64
	TotalMinted         uint64
	RoyaltyReceiver     Address
	RoyaltyFeeNumerator uint64
	Tokens              []TokenSnapshot
}

func (self *CollectionSnapshot) sortTokens() {
	slices.SortFunc(self.Tokens, func(a, b TokenSnapshot) int {
		switch {
		case a.TokenID < b.TokenID:
			return -1
		case a.TokenID > b.TokenID:
			return 1
		}
		return 0
	})
}

// snapshotBase copies the shared collection state. Callers hold at least the
// read lock; token entries are appended by the variant.
func (self *Collection) snapshotBase() CollectionSnapshot {
	return CollectionSnapshot{
		Address:             self.addr,
		Kind:                self.kind,
		Owner:               self.access.Owner(),
		Name:                self.name,
		Symbol:              self.symbol,
		Description:         self.description,
		MaxSupply:           self.maxSupply,
		TotalMinted:         self.totalMinted,
		RoyaltyReceiver:     self.royaltyReceiver,
		RoyaltyFeeNumerator: self.royaltyFeeNumerator,
	}
}

// appendListingOnly adds snapshots for ids that carry sale metadata but were
// never minted, so listings survive a restart too. Callers hold the read lock.
func (self *Collection) appendListingOnly(out *CollectionSnapshot, seen map[uint64]bool) {
	for tokenID, listing := range self.listings {
		if seen[tokenID] {
			continue
		}
		token := TokenSnapshot{TokenID: tokenID}
		token.fillListing(listing)
		if token.hasListing() {
			out.Tokens = append(out.Tokens, token)
		}
	}
}

// restoreBase rebuilds the shared state from a snapshot, bypassing the
// initialize-once gate and emitting nothing.
func (self *Collection) restoreBase(snap *CollectionSnapshot) {
	self.initialized = true
	self.name = snap.Name
	self.symbol = snap.Symbol
	self.description = snap.Description
	self.maxSupply = snap.MaxSupply
	self.totalMinted = snap.TotalMinted
	self.royaltyReceiver = snap.RoyaltyReceiver
	self.royaltyFeeNumerator = snap.RoyaltyFeeNumerator
	self.access = NewAccessControl(snap.Owner)

	for _, token := range snap.Tokens {
		if token.URI != "" {
			self.uris[token.TokenID] = token.URI
		}
		if token.hasListing() {
			self.listings[token.TokenID] = &TokenListing{
				PriceGwei:    token.PriceGwei,
				ForSale:      token.ForSale,
				ListingStart: token.ListingStart,
				ListingEnd:   token.ListingEnd,
			}
		}
	}
}
