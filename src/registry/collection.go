package registry

import (
	"sync"
)

const (
	// FeeDenominator is the basis-points denominator shared by every royalty fraction.
	FeeDenominator uint64 = 10000

	// MaxTokenSalePriceGwei bounds listing prices to 250 ether.
	// Prices are denominated in gwei so the bound fits a uint64.
	MaxTokenSalePriceGwei uint64 = 250_000_000_000
)

type CollectionKind string

const (
	KindERC721  CollectionKind = "erc721"
	KindERC1155 CollectionKind = "erc1155"
)

// TokenListing is per-token sale metadata. The listing window is stored for
// external marketplaces to interpret, it is never enforced here.
type TokenListing struct {
	PriceGwei    uint64 `json:"price_gwei"`
	ForSale      bool   `json:"for_sale"`
	ListingStart int64  `json:"listing_start"`
	ListingEnd   int64  `json:"listing_end"`
}

// Collection is the state shared by both registry variants: identity and
// immutable descriptors, the supply ledger, sale metadata and royalties.
// All operations on one collection are serialized by its mutex, a failed
// precondition leaves the state untouched.
type Collection struct {
	mtx    sync.RWMutex
	access AccessControl
	addr   Address
	kind   CollectionKind
	emit   EmitFunc

	initialized bool
	name        string
	symbol      string
	description string
	maxSupply   uint64
	totalMinted uint64

	royaltyReceiver     Address
	royaltyFeeNumerator uint64

	uris     map[uint64]string
	listings map[uint64]*TokenListing
}

func newCollection(addr Address, kind CollectionKind, emit EmitFunc) Collection {
	return Collection{
		addr:     addr,
		kind:     kind,
		emit:     emit,
		uris:     make(map[uint64]string),
		listings: make(map[uint64]*TokenListing),
	}
}

// Initialize sets the immutable descriptors and makes the caller the owner.
// A collection is initialized exactly once.
func (self *Collection) Initialize(caller Address, name, symbol, description string, maxSupply uint64, royaltyReceiver Address, royaltyFeeNumerator uint64) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if self.initialized {
		return ErrAlreadyInitialized
	}
	if royaltyFeeNumerator > FeeDenominator {
		return ErrRoyaltyTooHigh
	}

	self.initialized = true
	self.name = name
	self.symbol = symbol
	self.description = description
	self.maxSupply = maxSupply
	self.royaltyReceiver = royaltyReceiver
	self.royaltyFeeNumerator = royaltyFeeNumerator
	self.access = NewAccessControl(caller)
	return
}

func (self *Collection) TransferOwnership(caller, newOwner Address) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.initialized {
		return ErrNotInitialized
	}
	err = self.access.TransferOwnership(caller, newOwner)
	if err != nil {
		return
	}
	self.emitEvent(&Event{
		Kind:     EventOwnershipTransferred,
		Registry: self.addr,
		Caller:   caller,
		NewOwner: newOwner,
	})
	return
}

// SetTokenSalePrice accepts 0..MaxTokenSalePriceGwei inclusive.
func (self *Collection) SetTokenSalePrice(caller Address, tokenID uint64, priceGwei uint64) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.initialized {
		return ErrNotInitialized
	}
	if !self.access.IsOwner(caller) {
		return ErrUnauthorized
	}
	if priceGwei > MaxTokenSalePriceGwei {
		return ErrPriceOutOfBounds
	}

	self.listing(tokenID).PriceGwei = priceGwei
	self.emitEvent(&Event{
		Kind:      EventTokenSalePriceSet,
		Registry:  self.addr,
		Caller:    caller,
		TokenID:   tokenID,
		PriceGwei: priceGwei,
	})
	return
}

// SetTokenForSale records the triple unconditionally. No ordering is enforced
// between start and end.
func (self *Collection) SetTokenForSale(caller Address, tokenID uint64, forSale bool, start, end int64) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.initialized {
		return ErrNotInitialized
	}
	if !self.access.IsOwner(caller) {
		return ErrUnauthorized
	}

	listing := self.listing(tokenID)
	listing.ForSale = forSale
	listing.ListingStart = start
	listing.ListingEnd = end
	self.emitEvent(&Event{
		Kind:         EventTokenForSale,
		Registry:     self.addr,
		Caller:       caller,
		TokenID:      tokenID,
		ForSale:      forSale,
		ListingStart: start,
		ListingEnd:   end,
	})
	return
}

// IsTokenForSale returns the stored flag as-is. A token stays reported as
// for-sale after its window elapses until the owner toggles it off.
func (self *Collection) IsTokenForSale(tokenID uint64) bool {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	listing, ok := self.listings[tokenID]
	return ok && listing.ForSale
}

func (self *Collection) SetDefaultRoyalty(caller, receiver Address, feeNumerator uint64) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.initialized {
		return ErrNotInitialized
	}
	if !self.access.IsOwner(caller) {
		return ErrUnauthorized
	}
	if feeNumerator > FeeDenominator {
		return ErrRoyaltyTooHigh
	}

	self.royaltyReceiver = receiver
	self.royaltyFeeNumerator = feeNumerator
	self.emitEvent(&Event{
		Kind:                EventDefaultRoyaltySet,
		Registry:            self.addr,
		Caller:              caller,
		RoyaltyReceiver:     receiver,
		RoyaltyFeeNumerator: feeNumerator,
	})
	return
}

// RoyaltyInfo reports the royalty owed on a secondary sale of the given price.
func (self *Collection) RoyaltyInfo(salePriceGwei uint64) (receiver Address, royaltyGwei uint64) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.royaltyReceiver, salePriceGwei * self.royaltyFeeNumerator / FeeDenominator
}

func (self *Collection) Address() Address     { return self.addr }
func (self *Collection) Kind() CollectionKind { return self.kind }

func (self *Collection) Owner() Address {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.access.Owner()
}

func (self *Collection) Name() string {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.name
}

func (self *Collection) Symbol() string {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.symbol
}

func (self *Collection) Description() string {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.description
}

func (self *Collection) MaxSupply() uint64 {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.maxSupply
}

func (self *Collection) TotalMinted() uint64 {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.totalMinted
}

func (self *Collection) TokenURI(tokenID uint64) (uri string, ok bool) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	uri, ok = self.uris[tokenID]
	return
}

func (self *Collection) Listing(tokenID uint64) (out TokenListing) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	if listing, ok := self.listings[tokenID]; ok {
		out = *listing
	}
	return
}

// ListingStats counts tokens flagged for sale and, among them, listings whose
// window already elapsed. Observational only, used by the monitoring job.
func (self *Collection) ListingStats(now int64) (active, elapsed int) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	for _, listing := range self.listings {
		if !listing.ForSale {
			continue
		}
		active++
		if listing.ListingEnd > 0 && listing.ListingEnd < now {
			elapsed++
		}
	}
	return
}

// listing returns the mutable entry for a token id, allocating it on first use.
// Callers hold the write lock.
func (self *Collection) listing(tokenID uint64) *TokenListing {
	entry, ok := self.listings[tokenID]
	if !ok {
		entry = new(TokenListing)
		self.listings[tokenID] = entry
	}
	return entry
}

func (self *Collection) emitEvent(event *Event) {
	if self.emit != nil {
		self.emit(event)
	}
}

// requireMintable groups the checks every mint shares. Callers hold the write lock.
func (self *Collection) requireMintable(caller Address, amount uint64) error {
	if !self.initialized {
		return ErrNotInitialized
	}
	if !self.access.IsOwner(caller) {
		return ErrUnauthorized
	}
	// Compared against the remaining headroom, totalMinted never exceeds
	// maxSupply so the subtraction cannot underflow and huge amounts cannot
	// wrap the check.
	if amount > self.maxSupply-self.totalMinted {
		return ErrExceedsMaxSupply
	}
	return nil
}
