package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"nftfactory/src/registry"
	"nftfactory/src/utils/config"
	monitor_factory "nftfactory/src/utils/monitoring/factory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

type ServerTestSuite struct {
	suite.Suite

	config  *config.Config
	owner   string
	creator string
	server  *Server
	factory *registry.Factory
}

func (s *ServerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *ServerTestSuite) SetupTest() {
	s.config = config.Default()
	s.config.IsDevelopment = true

	s.owner = s.config.Factory.Owner
	s.creator = "0xcreator"

	s.factory = registry.NewFactory(registry.Address(s.owner))
	monitor := monitor_factory.NewMonitor().WithMaxHistorySize(30)

	s.server = NewServer(s.config).
		WithMonitor(monitor).
		WithFactory(s.factory)
	s.server.routes()
}

// request runs one handler through the router. Development mode is on, the
// plain header carries the caller identity.
func (s *ServerTestSuite) request(method, path, caller string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		assert.Nil(s.T(), err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Caller-Address", caller)
	}

	w := httptest.NewRecorder()
	s.server.Router.ServeHTTP(w, req)
	return w
}

func (s *ServerTestSuite) parse(w *httptest.ResponseRecorder) (out map[string]interface{}) {
	err := json.Unmarshal(w.Body.Bytes(), &out)
	assert.Nil(s.T(), err)
	return
}

func (s *ServerTestSuite) createCollection(kind string, maxSupply uint64) (addr string) {
	s.request(http.MethodPost, "/v1/projects", s.creator, gin.H{"details": "a drop"})
	s.request(http.MethodPost, "/v1/projects/"+s.creator+"/approve", s.owner, nil)

	w := s.request(http.MethodPost, "/v1/collections/"+kind, s.creator, gin.H{
		"name":       "Drop",
		"symbol":     "DRP",
		"max_supply": maxSupply,
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	return s.parse(w)["address"].(string)
}

func (s *ServerTestSuite) TestSubmitApproveCreateMintFlow() {
	w := s.request(http.MethodPost, "/v1/projects", s.creator, gin.H{"details": "a drop"})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	body := s.parse(w)
	assert.Equal(s.T(), "pending", body["status"])
	assert.Equal(s.T(), false, body["approved"])

	w = s.request(http.MethodPost, "/v1/projects/"+s.creator+"/approve", s.owner, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), true, s.parse(w)["approved"])

	w = s.request(http.MethodPost, "/v1/collections/erc721", s.creator, gin.H{
		"name":       "Drop",
		"symbol":     "DRP",
		"max_supply": 5,
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	body = s.parse(w)
	addr := body["address"].(string)
	assert.NotEmpty(s.T(), addr)
	assert.Equal(s.T(), "erc721", body["kind"])
	assert.Equal(s.T(), s.creator, body["creator"])
	assert.Equal(s.T(), s.creator, body["owner"])

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{
		"to":       "0xfan",
		"token_id": 1,
		"uri":      "ipfs://1",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	body = s.parse(w)
	assert.Equal(s.T(), "0xfan", body["holder"])
	assert.Equal(s.T(), true, body["minted"])
	assert.Equal(s.T(), "ipfs://1", body["uri"])

	w = s.request(http.MethodGet, "/v1/collections/"+addr, "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), float64(1), s.parse(w)["total_minted"])

	w = s.request(http.MethodGet, "/v1/collections", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	collections := s.parse(w)["collections"].([]interface{})
	assert.Len(s.T(), collections, 1)

	w = s.request(http.MethodGet, "/v1/collections/"+addr+"/tokens/1", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "0xfan", s.parse(w)["holder"])
}

func (s *ServerTestSuite) TestErrorBodiesCarrySentinelText() {
	// Creating without approval
	w := s.request(http.MethodPost, "/v1/collections/erc721", s.creator, gin.H{
		"name":       "Drop",
		"symbol":     "DRP",
		"max_supply": 5,
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	assert.Equal(s.T(), registry.ErrProjectNotApproved.Error(), s.parse(w)["error"])

	// Deciding without admin rights
	s.request(http.MethodPost, "/v1/projects", s.creator, gin.H{"details": "a drop"})
	w = s.request(http.MethodPost, "/v1/projects/"+s.creator+"/approve", "0xstranger", nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	assert.Equal(s.T(), registry.ErrNotAdmin.Error(), s.parse(w)["error"])

	// Ceiling violation after approval
	s.request(http.MethodPost, "/v1/projects/"+s.creator+"/approve", s.owner, nil)
	w = s.request(http.MethodPost, "/v1/collections/erc721", s.creator, gin.H{
		"name":       "Drop",
		"symbol":     "DRP",
		"max_supply": s.factory.SupplyCeiling() + 1,
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), registry.ErrExceedsSupplyCeiling.Error(), s.parse(w)["error"])

	// Unknown collection
	w = s.request(http.MethodGet, "/v1/collections/0xmissing", "", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Equal(s.T(), registry.ErrCollectionNotFound.Error(), s.parse(w)["error"])

	// Unknown project
	w = s.request(http.MethodGet, "/v1/projects/0xmissing", "", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	assert.Equal(s.T(), ErrProjectNotFound.Error(), s.parse(w)["error"])
}

func (s *ServerTestSuite) TestMintErrors() {
	addr := s.createCollection("erc721", 1)

	w := s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{
		"to":       "0xfan",
		"token_id": 1,
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	// Token ids are never reissued
	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{
		"to":       "0xother",
		"token_id": 1,
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	assert.Equal(s.T(), registry.ErrTokenAlreadyMinted.Error(), s.parse(w)["error"])

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{
		"to":       "0xfan",
		"token_id": 2,
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), registry.ErrExceedsMaxSupply.Error(), s.parse(w)["error"])

	// Only the collection owner mints
	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", "0xstranger", gin.H{
		"to":       "0xfan",
		"token_id": 3,
	})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *ServerTestSuite) TestMintBatch() {
	addr := s.createCollection("erc1155", 100)

	w := s.request(http.MethodPost, "/v1/collections/"+addr+"/mint-batch", s.creator, gin.H{
		"to":        "0xfan",
		"token_ids": []uint64{1, 2, 3},
		"amounts":   []uint64{10, 20, 30},
		"uris":      []string{"ipfs://1", "ipfs://2", "ipfs://3"},
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	tokens := s.parse(w)["tokens"].([]interface{})
	assert.Len(s.T(), tokens, 3)

	// Amount defaults to one for multi-edition mints
	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{
		"to":       "0xfan",
		"token_id": 4,
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	assert.Equal(s.T(), float64(1), s.parse(w)["supply"])

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint-batch", s.creator, gin.H{
		"to":        "0xfan",
		"token_ids": []uint64{5, 6},
		"amounts":   []uint64{1},
		"uris":      []string{"", ""},
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), registry.ErrLengthMismatch.Error(), s.parse(w)["error"])

	// Amounts large enough to wrap the supply counter are rejected too
	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{
		"to":       "0xfan",
		"token_id": 7,
		"amount":   uint64(math.MaxUint64),
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), registry.ErrExceedsMaxSupply.Error(), s.parse(w)["error"])

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint-batch", s.creator, gin.H{
		"to":        "0xfan",
		"token_ids": []uint64{8, 9},
		"amounts":   []uint64{math.MaxUint64, 1},
		"uris":      []string{"", ""},
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), registry.ErrExceedsMaxSupply.Error(), s.parse(w)["error"])
}

func (s *ServerTestSuite) TestMintBatchOnSingleEdition() {
	addr := s.createCollection("erc721", 10)

	w := s.request(http.MethodPost, "/v1/collections/"+addr+"/mint-batch", s.creator, gin.H{
		"to":        "0xfan",
		"token_ids": []uint64{1},
		"amounts":   []uint64{1},
		"uris":      []string{""},
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), ErrBatchUnsupported.Error(), s.parse(w)["error"])
}

func (s *ServerTestSuite) TestListings() {
	addr := s.createCollection("erc721", 10)

	w := s.request(http.MethodPost, "/v1/collections/"+addr+"/sale-price", s.creator, gin.H{
		"token_id":   1,
		"price_gwei": 1000,
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), float64(1000), s.parse(w)["price_gwei"])

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/sale-price", s.creator, gin.H{
		"token_id":   1,
		"price_gwei": registry.MaxTokenSalePriceGwei + 1,
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Equal(s.T(), registry.ErrPriceOutOfBounds.Error(), s.parse(w)["error"])

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/for-sale", s.creator, gin.H{
		"token_id":      1,
		"for_sale":      true,
		"listing_start": 100,
		"listing_end":   200,
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	body := s.parse(w)
	assert.Equal(s.T(), true, body["for_sale"])
	assert.Equal(s.T(), float64(100), body["listing_start"])
	assert.Equal(s.T(), float64(200), body["listing_end"])
}

func (s *ServerTestSuite) TestRoyalty() {
	addr := s.createCollection("erc721", 10)

	w := s.request(http.MethodPost, "/v1/collections/"+addr+"/royalty", s.creator, gin.H{
		"receiver":      "0xroyalties",
		"fee_numerator": 500,
	})
	assert.Equal(s.T(), http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/v1/collections/%s/royalty?sale_price=%d", addr, 1000), "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	body := s.parse(w)
	assert.Equal(s.T(), "0xroyalties", body["receiver"])
	assert.Equal(s.T(), float64(50), body["royalty_gwei"])

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/royalty", s.creator, gin.H{
		"receiver":      "0xroyalties",
		"fee_numerator": registry.FeeDenominator + 1,
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
}

func (s *ServerTestSuite) TestAdmins() {
	w := s.request(http.MethodPost, "/v1/admins/0xadmin", s.owner, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), s.parse(w)["admins"], "0xadmin")

	w = s.request(http.MethodGet, "/v1/admins", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	body := s.parse(w)
	assert.Equal(s.T(), s.owner, body["owner"])
	assert.Contains(s.T(), body["admins"], "0xadmin")

	// Admins cannot promote peers
	w = s.request(http.MethodPost, "/v1/admins/0xother", "0xadmin", nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, "/v1/admins/0xadmin", s.owner, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Empty(s.T(), s.parse(w)["admins"])
}

func (s *ServerTestSuite) TestCollectionOwnershipTransfer() {
	addr := s.createCollection("erc721", 10)

	w := s.request(http.MethodPost, "/v1/collections/"+addr+"/transfer-ownership", s.creator, gin.H{
		"new_owner": "0xnewowner",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "0xnewowner", s.parse(w)["owner"])

	// Mint rights moved with the ownership
	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{
		"to":       "0xfan",
		"token_id": 1,
	})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", "0xnewowner", gin.H{
		"to":       "0xfan",
		"token_id": 1,
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
}

func (s *ServerTestSuite) TestFactoryOwnershipTransfer() {
	w := s.request(http.MethodPost, "/v1/factory/transfer-ownership", s.owner, gin.H{
		"new_owner": "0xnewowner",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "0xnewowner", s.parse(w)["owner"])

	// The old owner lost admin management in the same step
	w = s.request(http.MethodPost, "/v1/admins/0xadmin", s.owner, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *ServerTestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/v1/state", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *ServerTestSuite) TestRequestTimeoutsAreApplied() {
	assert.Equal(s.T(), s.config.Gateway.ServerRequestTimeout, s.server.httpServer.ReadTimeout)
	assert.Equal(s.T(), s.config.Gateway.ServerRequestTimeout, s.server.httpServer.WriteTimeout)
}

func (s *ServerTestSuite) TestBadRequests() {
	// Missing required fields
	w := s.request(http.MethodPost, "/v1/projects", s.creator, gin.H{})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	addr := s.createCollection("erc721", 10)
	w = s.request(http.MethodPost, "/v1/collections/"+addr+"/mint", s.creator, gin.H{"token_id": 1})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	// Token id is numeric
	w = s.request(http.MethodGet, "/v1/collections/"+addr+"/tokens/abc", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}
