package gateway

import (
	"net/http"

	"nftfactory/src/gateway/request"
	"nftfactory/src/gateway/response"
	"nftfactory/src/utils/model"
	. "nftfactory/src/utils/logger"

	"github.com/gin-gonic/gin"
)

const maxEventPageSize = 1000

// onGetEvents pages through the persisted event log, oldest first.
func (self *Server) onGetEvents(c *gin.Context) {
	var in = new(request.GetEvents)
	err := c.ShouldBindQuery(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	// Defaults
	if in.Limit <= 0 {
		in.Limit = 100
	}
	if in.Limit > maxEventPageSize {
		in.Limit = maxEventPageSize
	}

	query := self.store.DB.WithContext(c).
		Table(model.TableEvent).
		Where("sequence > ?", in.After).
		Limit(in.Limit).
		Offset(in.Offset).
		Order("sequence ASC")

	if in.Registry != "" {
		query = query.Where("registry = ?", in.Registry)
	}
	if in.Kind != "" {
		query = query.Where("kind = ?", in.Kind)
	}

	var events []*model.Event
	err = query.Find(&events).Error
	if err != nil {
		LOGE(c, err, http.StatusInternalServerError).Error("Failed to fetch events")
		self.monitor.GetReport().Factory.Errors.DbEventInsert.Inc()
		return
	}

	c.JSON(http.StatusOK, response.EventsToResponse(events))
}
