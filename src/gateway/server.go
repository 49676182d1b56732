package gateway

import (
	"context"
	"net/http"

	"nftfactory/src/registry"
	"nftfactory/src/utils/config"
	"nftfactory/src/utils/monitoring"
	"nftfactory/src/utils/task"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/ratelimit"
)

// Rest API server, the whole operation surface lives under /v1
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	monitor  monitoring.Monitor
	factory  *registry.Factory
	store    *Store
	streamer *Streamer

	limiter   ratelimit.Limiter
	readCache *cache.Cache
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "server").
		WithOnBeforeStart(self.checkAuthSecret).
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	self.Router = gin.New()

	// The stream endpoint hijacks its connection, so these deadlines only
	// bound plain REST requests
	self.httpServer = &http.Server{
		Addr:         self.Config.Gateway.RESTListenAddress,
		Handler:      self.Router,
		ReadTimeout:  self.Config.Gateway.ServerRequestTimeout,
		WriteTimeout: self.Config.Gateway.ServerRequestTimeout,
	}

	if config.Gateway.RequestsPerSecond > 0 {
		self.limiter = ratelimit.New(config.Gateway.RequestsPerSecond)
	} else {
		self.limiter = ratelimit.NewUnlimited()
	}

	self.readCache = cache.New(config.Gateway.ReadCacheTTL, 2*config.Gateway.ReadCacheTTL)

	return
}

func (self *Server) WithMonitor(monitor monitoring.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) WithFactory(factory *registry.Factory) *Server {
	self.factory = factory
	return self
}

// WithStore is optional, without it event queries are not served.
func (self *Server) WithStore(store *Store) *Server {
	self.store = store
	return self
}

func (self *Server) WithStreamer(streamer *Streamer) *Server {
	self.streamer = streamer
	return self
}

// checkAuthSecret refuses to start a deployment that would verify tokens
// against an empty key. Only development may run without a secret.
func (self *Server) checkAuthSecret() error {
	if !self.Config.IsDevelopment && self.Config.Gateway.AuthSecret == "" {
		return ErrMissingAuthSecret
	}
	return nil
}

// throttle smears requests over time, server-wide.
func (self *Server) throttle() gin.HandlerFunc {
	return func(c *gin.Context) {
		self.limiter.Take()
		c.Next()
	}
}

func (self *Server) onGetMetrics() gin.HandlerFunc {
	reg := prometheus.NewRegistry()
	reg.MustRegister(self.monitor.GetPrometheusCollector())
	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

func (self *Server) routes() {
	self.Router.Use(gin.Recovery(), self.throttle())

	if self.Config.Profiler.Enabled {
		pprof.Register(self.Router)
	}

	v1 := self.Router.Group("v1")
	{
		v1.GET("health", self.monitor.OnGetHealth)
		v1.GET("state", self.monitor.OnGetState)
		v1.GET("metrics", self.onGetMetrics())

		v1.GET("admins", self.onGetAdmins)
		v1.GET("projects/:address", self.onGetProject)
		v1.GET("collections", self.onGetCollections)
		v1.GET("collections/:address", self.onGetCollection)
		v1.GET("collections/:address/tokens/:id", self.onGetToken)
		v1.GET("collections/:address/royalty", self.onGetRoyalty)

		if self.store != nil {
			v1.GET("events", self.onGetEvents)
		}
		if self.streamer != nil {
			v1.GET("events/stream", self.streamer.OnStream)
		}

		authed := v1.Group("", self.auth())
		{
			authed.POST("projects", self.onSubmitProject)
			authed.POST("projects/:address/approve", self.onApproveProject)
			authed.POST("projects/:address/reject", self.onRejectProject)
			authed.POST("admins/:address", self.onAddAdmin)
			authed.DELETE("admins/:address", self.onRemoveAdmin)
			authed.POST("factory/transfer-ownership", self.onTransferFactoryOwnership)

			authed.POST("collections/erc721", self.onCreateCollection(registry.KindERC721))
			authed.POST("collections/erc1155", self.onCreateCollection(registry.KindERC1155))
			authed.POST("collections/:address/mint", self.onMint)
			authed.POST("collections/:address/mint-batch", self.onMintBatch)
			authed.POST("collections/:address/sale-price", self.onSetSalePrice)
			authed.POST("collections/:address/for-sale", self.onSetForSale)
			authed.POST("collections/:address/royalty", self.onSetRoyalty)
			authed.POST("collections/:address/transfer-ownership", self.onTransferCollectionOwnership)
		}
	}
}

func (self *Server) run() (err error) {
	if self.Config.IsDevelopment {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	self.routes()

	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}
