package registry

import (
	"encoding/hex"

	"github.com/rs/xid"
)

// Address identifies a caller or a deployed registry.
// Identities are opaque, the surrounding transaction channel authenticates them.
type Address string

const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// NewAddress mints a fresh registry address.
// Globally unique thanks to xid, hex-encoded to look like the rest of the identities.
func NewAddress() Address {
	id := xid.New()
	return Address("0x" + hex.EncodeToString(id.Bytes()))
}

func (self Address) IsZero() bool {
	return self == "" || self == ZeroAddress
}
