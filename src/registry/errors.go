package registry

import "errors"

// Every constraint violation surfaces as one of these sentinels.
// Callers match with errors.Is, the gateway maps them to HTTP statuses.
var (
	ErrUnauthorized         = errors.New("caller is not the owner")
	ErrNotAdmin             = errors.New("caller is not an admin")
	ErrProjectNotApproved   = errors.New("project not approved")
	ErrExceedsSupplyCeiling = errors.New("max supply cannot exceed ceiling")
	ErrExceedsMaxSupply     = errors.New("exceeds max supply")
	ErrPriceOutOfBounds     = errors.New("sale price out of bounds")
	ErrAlreadyInitialized   = errors.New("collection already initialized")
	ErrNotInitialized       = errors.New("collection not initialized")
	ErrTokenAlreadyMinted   = errors.New("token already minted")
	ErrLengthMismatch       = errors.New("ids, amounts and uris length mismatch")
	ErrRoyaltyTooHigh       = errors.New("royalty fee numerator exceeds denominator")
	ErrCollectionNotFound   = errors.New("collection not found")
)
