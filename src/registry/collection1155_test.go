package registry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestCollection1155TestSuite(t *testing.T) {
	suite.Run(t, new(Collection1155TestSuite))
}

type Collection1155TestSuite struct {
	suite.Suite

	owner Address
	col   *Collection1155
}

func (s *Collection1155TestSuite) SetupTest() {
	s.owner = Address("0xowner")
	s.col = NewCollection1155(NewAddress(), nil)
	err := s.col.Initialize(s.owner, "Editions", "EDT", "multi edition", 100, ZeroAddress, 0)
	assert.Nil(s.T(), err)
}

func (s *Collection1155TestSuite) TestMint() {
	err := s.col.Mint(s.owner, Address("0xfan"), 1, 10, "ipfs://1")
	assert.Nil(s.T(), err)

	assert.Equal(s.T(), uint64(10), s.col.BalanceOf(Address("0xfan"), 1))
	assert.Equal(s.T(), uint64(10), s.col.TokenSupply(1))
	assert.Equal(s.T(), uint64(10), s.col.TotalMinted())

	// Same id again adds to supply and overwrites the uri
	err = s.col.Mint(s.owner, Address("0xother"), 1, 5, "ipfs://1-v2")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), uint64(15), s.col.TokenSupply(1))
	assert.Equal(s.T(), uint64(5), s.col.BalanceOf(Address("0xother"), 1))
	uri, _ := s.col.TokenURI(1)
	assert.Equal(s.T(), "ipfs://1-v2", uri)
}

func (s *Collection1155TestSuite) TestMintIsOwnerGated() {
	err := s.col.Mint(Address("0xstranger"), Address("0xfan"), 1, 10, "")
	assert.ErrorIs(s.T(), err, ErrUnauthorized)
	assert.Equal(s.T(), uint64(0), s.col.TotalMinted())
}

func (s *Collection1155TestSuite) TestMaxSupply() {
	err := s.col.Mint(s.owner, Address("0xfan"), 1, 10, "")
	assert.Nil(s.T(), err)

	// 10 + 95 crosses the ceiling of 100
	err = s.col.Mint(s.owner, Address("0xfan"), 2, 95, "")
	assert.ErrorIs(s.T(), err, ErrExceedsMaxSupply)

	assert.Equal(s.T(), uint64(10), s.col.TotalMinted())
	assert.Equal(s.T(), uint64(0), s.col.TokenSupply(2))

	err = s.col.Mint(s.owner, Address("0xfan"), 2, 90, "")
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), uint64(100), s.col.TotalMinted())
}

func (s *Collection1155TestSuite) TestMintBatch() {
	err := s.col.MintBatch(s.owner, Address("0xfan"),
		[]uint64{1, 2, 3},
		[]uint64{10, 20, 30},
		[]string{"ipfs://1", "ipfs://2", "ipfs://3"})
	assert.Nil(s.T(), err)

	assert.Equal(s.T(), uint64(60), s.col.TotalMinted())
	assert.Equal(s.T(), uint64(10), s.col.BalanceOf(Address("0xfan"), 1))
	assert.Equal(s.T(), uint64(20), s.col.BalanceOf(Address("0xfan"), 2))
	assert.Equal(s.T(), uint64(30), s.col.BalanceOf(Address("0xfan"), 3))
	uri, _ := s.col.TokenURI(2)
	assert.Equal(s.T(), "ipfs://2", uri)
}

func (s *Collection1155TestSuite) TestMintBatchIsAllOrNothing() {
	err := s.col.Mint(s.owner, Address("0xfan"), 1, 50, "")
	assert.Nil(s.T(), err)

	// 50 + 30 fits, the trailing 30 does not. Nothing is applied.
	err = s.col.MintBatch(s.owner, Address("0xfan"),
		[]uint64{2, 3},
		[]uint64{30, 30},
		[]string{"", ""})
	assert.ErrorIs(s.T(), err, ErrExceedsMaxSupply)

	assert.Equal(s.T(), uint64(50), s.col.TotalMinted())
	assert.Equal(s.T(), uint64(0), s.col.TokenSupply(2))
	assert.Equal(s.T(), uint64(0), s.col.TokenSupply(3))
}

func (s *Collection1155TestSuite) TestMintAmountCannotWrapTheCeiling() {
	err := s.col.Mint(s.owner, Address("0xfan"), 1, 10, "")
	assert.Nil(s.T(), err)

	// totalMinted + amount overflows uint64, the guard must still reject
	err = s.col.Mint(s.owner, Address("0xfan"), 2, math.MaxUint64-5, "")
	assert.ErrorIs(s.T(), err, ErrExceedsMaxSupply)

	assert.Equal(s.T(), uint64(10), s.col.TotalMinted())
	assert.Equal(s.T(), uint64(0), s.col.TokenSupply(2))
}

func (s *Collection1155TestSuite) TestMintBatchSumCannotWrap() {
	// The amounts sum to 0 modulo 2^64
	err := s.col.MintBatch(s.owner, Address("0xfan"),
		[]uint64{1, 2},
		[]uint64{math.MaxUint64, 1},
		[]string{"", ""})
	assert.ErrorIs(s.T(), err, ErrExceedsMaxSupply)

	assert.Equal(s.T(), uint64(0), s.col.TotalMinted())
	assert.Equal(s.T(), uint64(0), s.col.TokenSupply(1))
	assert.Equal(s.T(), uint64(0), s.col.TokenSupply(2))

	// A single overlarge element is caught by the headroom check too
	err = s.col.MintBatch(s.owner, Address("0xfan"),
		[]uint64{1},
		[]uint64{math.MaxUint64},
		[]string{""})
	assert.ErrorIs(s.T(), err, ErrExceedsMaxSupply)
	assert.Equal(s.T(), uint64(0), s.col.TotalMinted())
}

func (s *Collection1155TestSuite) TestMintBatchLengthMismatch() {
	err := s.col.MintBatch(s.owner, Address("0xfan"),
		[]uint64{1, 2},
		[]uint64{10},
		[]string{"", ""})
	assert.ErrorIs(s.T(), err, ErrLengthMismatch)

	err = s.col.MintBatch(s.owner, Address("0xfan"),
		[]uint64{1, 2},
		[]uint64{10, 20},
		[]string{""})
	assert.ErrorIs(s.T(), err, ErrLengthMismatch)

	assert.Equal(s.T(), uint64(0), s.col.TotalMinted())
}

func (s *Collection1155TestSuite) TestSnapshotRoundTrip() {
	err := s.col.Mint(s.owner, Address("0xfan"), 1, 10, "ipfs://1")
	assert.Nil(s.T(), err)
	err = s.col.Mint(s.owner, Address("0xother"), 1, 5, "ipfs://1")
	assert.Nil(s.T(), err)
	err = s.col.Mint(s.owner, Address("0xfan"), 2, 7, "ipfs://2")
	assert.Nil(s.T(), err)

	snap := s.col.Snapshot()
	assert.Equal(s.T(), KindERC1155, snap.Kind)
	assert.Len(s.T(), snap.Tokens, 2)
	assert.Equal(s.T(), uint64(15), snap.Tokens[0].Amount)
	assert.Equal(s.T(), uint64(10), snap.Tokens[0].Balances[Address("0xfan")])
	assert.Equal(s.T(), uint64(5), snap.Tokens[0].Balances[Address("0xother")])

	restored := NewCollection1155(snap.Address, nil)
	restored.restore(&snap)

	assert.Equal(s.T(), uint64(22), restored.TotalMinted())
	assert.Equal(s.T(), uint64(15), restored.TokenSupply(1))
	assert.Equal(s.T(), uint64(10), restored.BalanceOf(Address("0xfan"), 1))
	assert.Equal(s.T(), uint64(5), restored.BalanceOf(Address("0xother"), 1))
	assert.Equal(s.T(), uint64(7), restored.BalanceOf(Address("0xfan"), 2))
}
