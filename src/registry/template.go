package registry

// TokenRegistry is the behavior the factory and the gateway need from any
// deployed collection, regardless of variant.
type TokenRegistry interface {
	Address() Address
	Kind() CollectionKind
	Owner() Address
	Name() string
	Symbol() string
	Description() string
	MaxSupply() uint64
	TotalMinted() uint64
	TokenURI(tokenID uint64) (string, bool)
	Listing(tokenID uint64) TokenListing
	IsTokenForSale(tokenID uint64) bool
	RoyaltyInfo(salePriceGwei uint64) (Address, uint64)
	ListingStats(now int64) (active, elapsed int)
	Snapshot() CollectionSnapshot

	Initialize(caller Address, name, symbol, description string, maxSupply uint64, royaltyReceiver Address, royaltyFeeNumerator uint64) error
	TransferOwnership(caller, newOwner Address) error
	SetTokenSalePrice(caller Address, tokenID, priceGwei uint64) error
	SetTokenForSale(caller Address, tokenID uint64, forSale bool, start, end int64) error
	SetDefaultRoyalty(caller, receiver Address, feeNumerator uint64) error
}

// Template is the fixed blueprint a new registry is cloned from.
// How the clone is produced is deliberately trivial here, the byte-level
// mechanics belong to the deployment environment.
type Template struct {
	kind CollectionKind
}

func NewTemplate(kind CollectionKind) *Template {
	return &Template{kind: kind}
}

func (self *Template) Kind() CollectionKind {
	return self.kind
}

// Clone produces a fresh, uninitialized registry at the given address.
func (self *Template) Clone(addr Address, emit EmitFunc) TokenRegistry {
	if self.kind == KindERC1155 {
		return NewCollection1155(addr, emit)
	}
	return NewCollection721(addr, emit)
}
