package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestCollectionTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionTestSuite))
}

type CollectionTestSuite struct {
	suite.Suite

	owner Address
	col   *Collection721
}

func (s *CollectionTestSuite) SetupTest() {
	s.owner = Address("0xowner")
	s.col = NewCollection721(NewAddress(), nil)
	err := s.col.Initialize(s.owner, "Drop", "DRP", "first drop", 10, ZeroAddress, 0)
	assert.Nil(s.T(), err)
}

func (s *CollectionTestSuite) TestInitializeOnce() {
	err := s.col.Initialize(Address("0xother"), "Again", "AGN", "", 5, ZeroAddress, 0)
	assert.ErrorIs(s.T(), err, ErrAlreadyInitialized)

	// Descriptors untouched
	assert.Equal(s.T(), "Drop", s.col.Name())
	assert.Equal(s.T(), s.owner, s.col.Owner())
}

func (s *CollectionTestSuite) TestUninitializedOperationsFail() {
	col := NewCollection721(NewAddress(), nil)

	err := col.Mint(s.owner, Address("0xfan"), 1, "")
	assert.ErrorIs(s.T(), err, ErrNotInitialized)
	err = col.SetTokenSalePrice(s.owner, 1, 100)
	assert.ErrorIs(s.T(), err, ErrNotInitialized)
	err = col.TransferOwnership(s.owner, Address("0xother"))
	assert.ErrorIs(s.T(), err, ErrNotInitialized)
}

func (s *CollectionTestSuite) TestInitializeRejectsExcessiveRoyalty() {
	col := NewCollection721(NewAddress(), nil)
	err := col.Initialize(s.owner, "Drop", "DRP", "", 10, ZeroAddress, FeeDenominator+1)
	assert.ErrorIs(s.T(), err, ErrRoyaltyTooHigh)

	// Still uninitialized, a correct retry goes through
	err = col.Initialize(s.owner, "Drop", "DRP", "", 10, ZeroAddress, FeeDenominator)
	assert.Nil(s.T(), err)
}

func (s *CollectionTestSuite) TestSalePriceBounds() {
	err := s.col.SetTokenSalePrice(s.owner, 1, 0)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), uint64(0), s.col.Listing(1).PriceGwei)

	err = s.col.SetTokenSalePrice(s.owner, 1, MaxTokenSalePriceGwei)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), MaxTokenSalePriceGwei, s.col.Listing(1).PriceGwei)

	err = s.col.SetTokenSalePrice(s.owner, 1, MaxTokenSalePriceGwei+1)
	assert.ErrorIs(s.T(), err, ErrPriceOutOfBounds)
	assert.Equal(s.T(), MaxTokenSalePriceGwei, s.col.Listing(1).PriceGwei)
}

func (s *CollectionTestSuite) TestSalePriceIsOwnerGated() {
	err := s.col.SetTokenSalePrice(Address("0xstranger"), 1, 100)
	assert.ErrorIs(s.T(), err, ErrUnauthorized)

	err = s.col.SetTokenForSale(Address("0xstranger"), 1, true, 0, 0)
	assert.ErrorIs(s.T(), err, ErrUnauthorized)
	assert.False(s.T(), s.col.IsTokenForSale(1))
}

func (s *CollectionTestSuite) TestForSaleIsStoredAsGiven() {
	start := time.Now().Unix() - 3600
	end := time.Now().Unix() - 1800

	// The window already elapsed, the flag still rules
	err := s.col.SetTokenForSale(s.owner, 1, true, start, end)
	assert.Nil(s.T(), err)
	assert.True(s.T(), s.col.IsTokenForSale(1))

	listing := s.col.Listing(1)
	assert.Equal(s.T(), start, listing.ListingStart)
	assert.Equal(s.T(), end, listing.ListingEnd)

	err = s.col.SetTokenForSale(s.owner, 1, false, 0, 0)
	assert.Nil(s.T(), err)
	assert.False(s.T(), s.col.IsTokenForSale(1))

	// Unknown token ids are simply not for sale
	assert.False(s.T(), s.col.IsTokenForSale(99))
}

func (s *CollectionTestSuite) TestDefaultRoyalty() {
	receiver := Address("0xroyalties")

	err := s.col.SetDefaultRoyalty(s.owner, receiver, 500)
	assert.Nil(s.T(), err)

	// 5% of 1000 gwei
	got, royalty := s.col.RoyaltyInfo(1000)
	assert.Equal(s.T(), receiver, got)
	assert.Equal(s.T(), uint64(50), royalty)

	// Integer division truncates
	_, royalty = s.col.RoyaltyInfo(199)
	assert.Equal(s.T(), uint64(9), royalty)

	err = s.col.SetDefaultRoyalty(s.owner, receiver, FeeDenominator)
	assert.Nil(s.T(), err)
	_, royalty = s.col.RoyaltyInfo(1000)
	assert.Equal(s.T(), uint64(1000), royalty)

	err = s.col.SetDefaultRoyalty(s.owner, receiver, FeeDenominator+1)
	assert.ErrorIs(s.T(), err, ErrRoyaltyTooHigh)
	_, royalty = s.col.RoyaltyInfo(1000)
	assert.Equal(s.T(), uint64(1000), royalty)

	err = s.col.SetDefaultRoyalty(Address("0xstranger"), receiver, 100)
	assert.ErrorIs(s.T(), err, ErrUnauthorized)
}

func (s *CollectionTestSuite) TestListingStats() {
	now := time.Now().Unix()

	err := s.col.SetTokenForSale(s.owner, 1, true, now-100, now+100)
	assert.Nil(s.T(), err)
	err = s.col.SetTokenForSale(s.owner, 2, true, now-200, now-100)
	assert.Nil(s.T(), err)
	err = s.col.SetTokenForSale(s.owner, 3, false, 0, 0)
	assert.Nil(s.T(), err)
	// Open-ended listing never elapses
	err = s.col.SetTokenForSale(s.owner, 4, true, now-100, 0)
	assert.Nil(s.T(), err)

	active, elapsed := s.col.ListingStats(now)
	assert.Equal(s.T(), 3, active)
	assert.Equal(s.T(), 1, elapsed)
}
