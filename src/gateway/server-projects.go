package gateway

import (
	"errors"
	"net/http"

	"nftfactory/src/gateway/request"
	"nftfactory/src/gateway/response"
	"nftfactory/src/registry"
	. "nftfactory/src/utils/logger"

	"github.com/gin-gonic/gin"
)

var ErrProjectNotFound = errors.New("project not found")

func (self *Server) onSubmitProject(c *gin.Context) {
	var in = new(request.SubmitProject)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	submitter := caller(c)
	self.factory.SubmitProject(submitter, in.Details)

	LOG(c).WithField("submitter", submitter).Debug("Project submitted")

	project, _ := self.factory.Project(submitter)
	c.JSON(http.StatusCreated, response.ProjectToResponse(submitter, project))
}

func (self *Server) onApproveProject(c *gin.Context) {
	self.decideProject(c, self.factory.ApproveProject)
}

func (self *Server) onRejectProject(c *gin.Context) {
	self.decideProject(c, self.factory.RejectProject)
}

func (self *Server) decideProject(c *gin.Context, decide func(caller, submitter registry.Address) error) {
	submitter := registry.Address(c.Param("address"))

	err := decide(caller(c), submitter)
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	project, _ := self.factory.Project(submitter)
	c.JSON(http.StatusOK, response.ProjectToResponse(submitter, project))
}

func (self *Server) onGetProject(c *gin.Context) {
	submitter := registry.Address(c.Param("address"))

	project, ok := self.factory.Project(submitter)
	if !ok {
		LOGE(c, ErrProjectNotFound, http.StatusNotFound).Debug("Project not found")
		return
	}

	c.JSON(http.StatusOK, response.ProjectToResponse(submitter, project))
}

func (self *Server) onAddAdmin(c *gin.Context) {
	admin := registry.Address(c.Param("address"))

	err := self.factory.AddAdmin(caller(c), admin)
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": self.factory.Admins()})
}

func (self *Server) onRemoveAdmin(c *gin.Context) {
	admin := registry.Address(c.Param("address"))

	err := self.factory.RemoveAdmin(caller(c), admin)
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admins": self.factory.Admins()})
}

func (self *Server) onGetAdmins(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"owner":  self.factory.Owner(),
		"admins": self.factory.Admins(),
	})
}

func (self *Server) onTransferFactoryOwnership(c *gin.Context) {
	var in = new(request.TransferOwnership)
	err := c.ShouldBindJSON(in)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to parse request")
		return
	}

	err = self.factory.TransferOwnership(caller(c), registry.Address(in.NewOwner))
	if err != nil {
		self.abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"owner": self.factory.Owner()})
}
