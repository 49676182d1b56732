package registry

// Collection721 is the single-edition variant: one unit per token id,
// a holder and an URI recorded per id.
type Collection721 struct {
	Collection

	holders map[uint64]Address
}

func NewCollection721(addr Address, emit EmitFunc) (self *Collection721) {
	self = new(Collection721)
	self.Collection = newCollection(addr, KindERC721, emit)
	self.holders = make(map[uint64]Address)
	return
}

// Mint issues one unit of tokenID to the given holder.
// Owner-gated, bounded by maxSupply, token ids are never reissued.
func (self *Collection721) Mint(caller, to Address, tokenID uint64, uri string) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	err = self.requireMintable(caller, 1)
	if err != nil {
		return
	}
	if _, exists := self.holders[tokenID]; exists {
		return ErrTokenAlreadyMinted
	}

	self.holders[tokenID] = to
	self.uris[tokenID] = uri
	self.totalMinted += 1
	self.emitEvent(&Event{
		Kind:     EventTokenMinted,
		Registry: self.addr,
		Caller:   caller,
		To:       to,
		TokenID:  tokenID,
		Amount:   1,
		URI:      uri,
	})
	return
}

func (self *Collection721) OwnerOf(tokenID uint64) (holder Address, ok bool) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	holder, ok = self.holders[tokenID]
	return
}

func (self *Collection721) Snapshot() (out CollectionSnapshot) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	out = self.snapshotBase()
	seen := make(map[uint64]bool, len(self.holders))
	for tokenID, holder := range self.holders {
		seen[tokenID] = true
		token := TokenSnapshot{
			TokenID: tokenID,
			Holder:  holder,
			Amount:  1,
			URI:     self.uris[tokenID],
		}
		token.fillListing(self.listings[tokenID])
		out.Tokens = append(out.Tokens, token)
	}
	self.appendListingOnly(&out, seen)
	out.sortTokens()
	return
}

func (self *Collection721) restore(snap *CollectionSnapshot) {
	self.restoreBase(snap)
	for _, token := range snap.Tokens {
		if token.Holder.IsZero() {
			// Listing metadata on an unminted token id
			continue
		}
		self.holders[token.TokenID] = token.Holder
	}
}
