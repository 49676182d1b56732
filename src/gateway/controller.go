package gateway

import (
	"nftfactory/src/registry"
	"nftfactory/src/utils/config"
	"nftfactory/src/utils/model"
	monitor_factory "nftfactory/src/utils/monitoring/factory"
	"nftfactory/src/utils/publisher"
	"nftfactory/src/utils/task"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the gateway.
// Sets up the registries, persistence and every event consumer.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "controller")

	monitor := monitor_factory.NewMonitor().
		WithMaxHistorySize(30)

	factory := registry.NewFactory(registry.Address(config.Factory.Owner)).
		WithSupplyCeiling(config.Factory.MaxCollectionSupply).
		WithEventBuffer(config.Factory.EventBufferSize)

	hub := NewHub(config).
		WithInputChannel(factory.Output()).
		WithMonitor(monitor)

	var store *Store
	if config.Database.Enabled {
		db, err := model.NewConnection(self.Ctx, config, "gateway")
		if err != nil {
			return nil, err
		}

		storeInput := make(chan *registry.Event, config.Factory.EventBufferSize)
		store = NewStore(config).
			WithDB(db).
			WithFactory(factory).
			WithMonitor(monitor).
			WithInputChannel(storeInput)
		hub = hub.WithReliableOutput(storeInput)

		// Boot state comes from rows, before any request is served
		err = store.Hydrate(self.Ctx)
		if err != nil {
			return nil, err
		}
	}

	streamInput := make(chan *registry.Event, config.Factory.EventBufferSize)
	streamer := NewStreamer(config).
		WithInputChannel(streamInput).
		WithMonitor(monitor)
	hub = hub.WithOutput(streamInput)

	var redisPublisher *publisher.RedisPublisher[*registry.Event]
	if config.Redis.Enabled {
		publishInput := make(chan *registry.Event, config.Redis.MaxQueueSize)
		redisPublisher = publisher.NewRedisPublisher[*registry.Event](config, "redis-publisher").
			WithChannelName(config.Redis.ChannelName).
			WithMonitor(monitor).
			WithInputChannel(publishInput)
		hub = hub.WithOutput(publishInput)
	}

	var forwarder *Forwarder
	if config.Forwarder.WebhookURL != "" {
		forwardInput := make(chan *registry.Event, config.Factory.EventBufferSize)
		forwarder = NewForwarder(config).
			WithInputChannel(forwardInput).
			WithMonitor(monitor)
		hub = hub.WithOutput(forwardInput)
	}

	cron := NewCron(config).
		WithFactory(factory).
		WithMonitor(monitor)

	server := NewServer(config).
		WithMonitor(monitor).
		WithFactory(factory).
		WithStore(store).
		WithStreamer(streamer)

	self.Task = self.Task.
		WithSubtask(monitor.Task).
		WithSubtask(hub.Task).
		WithSubtask(streamer.Task)

	if store != nil {
		self.Task = self.Task.WithSubtask(store.Task)
	}
	if redisPublisher != nil {
		self.Task = self.Task.WithSubtask(redisPublisher.Task)
	}
	if forwarder != nil {
		self.Task = self.Task.WithSubtask(forwarder.Task)
	}

	self.Task = self.Task.
		WithSubtask(cron.Task).
		WithSubtask(server.Task)

	return
}
