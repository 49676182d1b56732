package registry

// Collection1155 is the multi-edition variant: many units per token id,
// balances tracked per holder, one URI per id overwritable by later mints.
type Collection1155 struct {
	Collection

	supplies map[uint64]uint64
	balances map[uint64]map[Address]uint64
}

func NewCollection1155(addr Address, emit EmitFunc) (self *Collection1155) {
	self = new(Collection1155)
	self.Collection = newCollection(addr, KindERC1155, emit)
	self.supplies = make(map[uint64]uint64)
	self.balances = make(map[uint64]map[Address]uint64)
	return
}

// Mint issues amount units of tokenID to the given holder.
func (self *Collection1155) Mint(caller, to Address, tokenID, amount uint64, uri string) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	err = self.requireMintable(caller, amount)
	if err != nil {
		return
	}

	self.apply(caller, to, tokenID, amount, uri)
	return
}

// MintBatch checks the sum of amounts against the ceiling before touching any
// state, so the batch either fully succeeds or fully fails.
func (self *Collection1155) MintBatch(caller, to Address, tokenIDs, amounts []uint64, uris []string) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if len(tokenIDs) != len(amounts) || len(tokenIDs) != len(uris) {
		return ErrLengthMismatch
	}

	var total uint64
	for _, amount := range amounts {
		total += amount
		if total < amount {
			// The sum wrapped, no real supply can satisfy it
			return ErrExceedsMaxSupply
		}
	}
	err = self.requireMintable(caller, total)
	if err != nil {
		return
	}

	for i := range tokenIDs {
		self.apply(caller, to, tokenIDs[i], amounts[i], uris[i])
	}
	return
}

// apply records one mint and emits its event. Callers hold the write lock and
// have already validated the request.
func (self *Collection1155) apply(caller, to Address, tokenID, amount uint64, uri string) {
	self.supplies[tokenID] += amount
	if self.balances[tokenID] == nil {
		self.balances[tokenID] = make(map[Address]uint64)
	}
	self.balances[tokenID][to] += amount
	self.uris[tokenID] = uri
	self.totalMinted += amount
	self.emitEvent(&Event{
		Kind:     EventTokenMinted,
		Registry: self.addr,
		Caller:   caller,
		To:       to,
		TokenID:  tokenID,
		Amount:   amount,
		URI:      uri,
	})
}

func (self *Collection1155) BalanceOf(holder Address, tokenID uint64) uint64 {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.balances[tokenID][holder]
}

func (self *Collection1155) TokenSupply(tokenID uint64) uint64 {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.supplies[tokenID]
}

func (self *Collection1155) Snapshot() (out CollectionSnapshot) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	out = self.snapshotBase()
	seen := make(map[uint64]bool, len(self.supplies))
	for tokenID, supply := range self.supplies {
		seen[tokenID] = true
		token := TokenSnapshot{
			TokenID: tokenID,
			Amount:  supply,
			URI:     self.uris[tokenID],
		}
		if len(self.balances[tokenID]) > 0 {
			token.Balances = make(map[Address]uint64, len(self.balances[tokenID]))
			for holder, balance := range self.balances[tokenID] {
				token.Balances[holder] = balance
			}
		}
		token.fillListing(self.listings[tokenID])
		out.Tokens = append(out.Tokens, token)
	}
	self.appendListingOnly(&out, seen)
	out.sortTokens()
	return
}

func (self *Collection1155) restore(snap *CollectionSnapshot) {
	self.restoreBase(snap)
	for _, token := range snap.Tokens {
		if token.Amount == 0 {
			continue
		}
		self.supplies[token.TokenID] = token.Amount
		if len(token.Balances) > 0 {
			self.balances[token.TokenID] = make(map[Address]uint64, len(token.Balances))
			for holder, balance := range token.Balances {
				self.balances[token.TokenID][holder] = balance
			}
		}
	}
}
