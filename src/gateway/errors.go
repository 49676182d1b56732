package gateway

import (
	"errors"
	"net/http"

	"nftfactory/src/registry"
	. "nftfactory/src/utils/logger"

	"github.com/gin-gonic/gin"
)

var ErrBatchUnsupported = errors.New("collection does not support batch minting")

// statusFor maps domain sentinels to HTTP statuses. Bodies carry the sentinel
// text verbatim so clients can match on it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrUnauthorized),
		errors.Is(err, registry.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, registry.ErrCollectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrProjectNotApproved),
		errors.Is(err, registry.ErrAlreadyInitialized),
		errors.Is(err, registry.ErrTokenAlreadyMinted):
		return http.StatusConflict
	case errors.Is(err, registry.ErrExceedsSupplyCeiling),
		errors.Is(err, registry.ErrExceedsMaxSupply),
		errors.Is(err, registry.ErrPriceOutOfBounds),
		errors.Is(err, registry.ErrLengthMismatch),
		errors.Is(err, registry.ErrRoyaltyTooHigh),
		errors.Is(err, registry.ErrNotInitialized),
		errors.Is(err, ErrBatchUnsupported):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (self *Server) abortDomainError(c *gin.Context, err error) {
	if errors.Is(err, registry.ErrUnauthorized) || errors.Is(err, registry.ErrNotAdmin) {
		self.monitor.GetReport().Factory.Errors.Unauthorized.Inc()
	}
	LOGE(c, err, statusFor(err)).Debug("Operation rejected")
}
