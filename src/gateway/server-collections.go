package gateway

import (
	"net/http"
	"strconv"

	"nftfactory/src/gateway/request"
	"nftfactory/src/gateway/response"
	"nftfactory/src/registry"
	. "nftfactory/src/utils/logger"

	"github.com/gin-gonic/gin"
)

func (self *Server) onCreateCollection(kind registry.CollectionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in = new(request.CreateCollection)
		err := c.ShouldBindJSON(in)
		if err != nil {
			LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
			return
		}

		creator := caller(c)

		var col registry.TokenRegistry
		if kind == registry.KindERC1155 {
			col, err = self.factory.CreateERC1155Collection(creator, in.Name, in.Symbol, in.Description, in.MaxSupply, in.RoyaltyFeeNumerator)
		} else {
			col, err = self.factory.CreateERC721Collection(creator, in.Name, in.Symbol, in.Description, in.MaxSupply, in.RoyaltyFeeNumerator)
		}
		if err != nil {
			self.abortDomainError(c, err)
			return
		}

		LOG(c).
			WithField("collection", col.Address()).
			WithField("kind", kind).
			WithField("creator", creator).
			Info("Collection created")

		c.JSON(http.StatusCreated, response.CollectionToResponse(col, creator))
	}
}

// collection resolves the :address route param, responding 404 on miss.
func (self *Server) collection(c *gin.Context) (col registry.TokenRegistry, ok bool) {
	col, err := self.factory.Collection(registry.Address(c.Param("address")))
	if err != nil {
		self.abortDomainError(c, err)
		return nil, false
	}
	return col, true
}

func (self *Server) onMint(c *gin.Context) {
	var in = new(request.Mint)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	switch v := col.(type) {
	case *registry.Collection1155:
		if in.Amount == 0 {
			in.Amount = 1
		}
		err = v.Mint(caller(c), registry.Address(in.To), in.TokenID, in.Amount, in.Uri)
	case *registry.Collection721:
		err = v.Mint(caller(c), registry.Address(in.To), in.TokenID, in.Uri)
	}
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	self.readCache.Delete(string(col.Address()))
	c.JSON(http.StatusCreated, response.TokenToResponse(col, in.TokenID))
}

func (self *Server) onMintBatch(c *gin.Context) {
	var in = new(request.MintBatch)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	multi, ok := col.(*registry.Collection1155)
	if !ok {
		self.abortDomainError(c, ErrBatchUnsupported)
		return
	}

	err = multi.MintBatch(caller(c), registry.Address(in.To), in.TokenIDs, in.Amounts, in.Uris)
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	self.readCache.Delete(string(col.Address()))

	tokens := make([]*response.Token, len(in.TokenIDs))
	for i, tokenID := range in.TokenIDs {
		tokens[i] = response.TokenToResponse(col, tokenID)
	}
	c.JSON(http.StatusCreated, gin.H{"tokens": tokens})
}

func (self *Server) onSetSalePrice(c *gin.Context) {
	var in = new(request.SetSalePrice)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	err = col.SetTokenSalePrice(caller(c), in.TokenID, in.PriceGwei)
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TokenToResponse(col, in.TokenID))
}

func (self *Server) onSetForSale(c *gin.Context) {
	var in = new(request.SetForSale)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	err = col.SetTokenForSale(caller(c), in.TokenID, in.ForSale, in.ListingStart, in.ListingEnd)
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TokenToResponse(col, in.TokenID))
}

func (self *Server) onSetRoyalty(c *gin.Context) {
	var in = new(request.SetRoyalty)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	err = col.SetDefaultRoyalty(caller(c), registry.Address(in.Receiver), in.FeeNumerator)
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	self.readCache.Delete(string(col.Address()))
	c.Status(http.StatusNoContent)
}

func (self *Server) onTransferCollectionOwnership(c *gin.Context) {
	var in = new(request.TransferOwnership)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	err = col.TransferOwnership(caller(c), registry.Address(in.NewOwner))
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	self.readCache.Delete(string(col.Address()))
	c.JSON(http.StatusOK, gin.H{"owner": col.Owner()})
}

func (self *Server) onGetCollections(c *gin.Context) {
	addresses := self.factory.CollectionAddresses()

	out := response.GetCollections{Collections: make([]response.CollectionSummary, 0, len(addresses))}
	for _, addr := range addresses {
		col, err := self.factory.Collection(addr)
		if err != nil {
			continue
		}
		out.Collections = append(out.Collections, response.CollectionSummary{
			Address:     string(addr),
			Kind:        string(col.Kind()),
			Name:        col.Name(),
			TotalMinted: col.TotalMinted(),
			MaxSupply:   col.MaxSupply(),
		})
	}

	c.JSON(http.StatusOK, &out)
}

func (self *Server) onGetCollection(c *gin.Context) {
	addr := c.Param("address")

	if cached, ok := self.readCache.Get(addr); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	creator, _ := self.factory.CollectionOwner(col.Address())
	out := response.CollectionToResponse(col, creator)
	self.readCache.SetDefault(addr, out)

	c.JSON(http.StatusOK, out)
}

func (self *Server) onGetToken(c *gin.Context) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse token id")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, response.TokenToResponse(col, tokenID))
}

func (self *Server) onGetRoyalty(c *gin.Context) {
	salePrice, err := strconv.ParseUint(c.DefaultQuery("sale_price", "0"), 10, 64)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse sale price")
		return
	}

	col, ok := self.collection(c)
	if !ok {
		return
	}

	receiver, royalty := col.RoyaltyInfo(salePrice)
	out := response.Royalty{RoyaltyGwei: royalty}
	if !receiver.IsZero() {
		out.Receiver = string(receiver)
	}

	c.JSON(http.StatusOK, &out)
}
