package registry

import "encoding/json"

type EventKind string

const (
	EventProjectSubmitted     EventKind = "project_submitted"
	EventProjectApproved      EventKind = "project_approved"
	EventProjectRejected      EventKind = "project_rejected"
	EventAdminAdded           EventKind = "admin_added"
	EventAdminRemoved         EventKind = "admin_removed"
	EventCollectionCreated    EventKind = "collection_created"
	EventTokenMinted          EventKind = "token_minted"
	EventTokenSalePriceSet    EventKind = "token_sale_price_set"
	EventTokenForSale         EventKind = "token_for_sale"
	EventDefaultRoyaltySet    EventKind = "default_royalty_set"
	EventOwnershipTransferred EventKind = "ownership_transferred"
)

// Event is one entry of the externally visible log.
// Sequence is monotonic across the whole factory and every registry it deployed.
type Event struct {
	ID        string    `json:"id"`
	Sequence  uint64    `json:"sequence"`
	Kind      EventKind `json:"kind"`
	Registry  Address   `json:"registry"`
	Caller    Address   `json:"caller"`
	Timestamp int64     `json:"timestamp"`

	// Project workflow
	Submitter Address `json:"submitter,omitempty"`
	Details   string  `json:"details,omitempty"`
	Status    string  `json:"status,omitempty"`
	Admin     Address `json:"admin,omitempty"`

	// Collection creation
	Collection          Address        `json:"collection,omitempty"`
	CollectionKind      CollectionKind `json:"collection_kind,omitempty"`
	Name                string         `json:"name,omitempty"`
	Symbol              string         `json:"symbol,omitempty"`
	Description         string         `json:"description,omitempty"`
	MaxSupply           uint64         `json:"max_supply,omitempty"`
	RoyaltyReceiver     Address        `json:"royalty_receiver,omitempty"`
	RoyaltyFeeNumerator uint64         `json:"royalty_fee_numerator,omitempty"`

	// Token operations. Zero is a legitimate token id, amount and sale flag,
	// so these three are always serialized.
	To           Address `json:"to,omitempty"`
	TokenID      uint64  `json:"token_id"`
	Amount       uint64  `json:"amount"`
	URI          string  `json:"uri,omitempty"`
	PriceGwei    uint64  `json:"price_gwei,omitempty"`
	ForSale      bool    `json:"for_sale"`
	ListingStart int64   `json:"listing_start,omitempty"`
	ListingEnd   int64   `json:"listing_end,omitempty"`
	NewOwner     Address `json:"new_owner,omitempty"`
}

// EmitFunc hands a finished event to the log. May be nil for detached registries.
type EmitFunc func(*Event)

// MarshalBinary makes events publishable as-is through the redis publisher.
func (self *Event) MarshalBinary() ([]byte, error) {
	return json.Marshal(self)
}
