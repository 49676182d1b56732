package gateway

import (
	"net/http"
	"sync"

	"nftfactory/src/registry"
	"nftfactory/src/utils/config"
	"nftfactory/src/utils/monitoring"
	"nftfactory/src/utils/task"
	. "nftfactory/src/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/teivah/onecontext"
	"nhooyr.io/websocket"
)

// Streamer pushes the live event log to websocket clients.
// Clients that can't keep up silently miss events, the persisted log is the
// place to catch up from.
type Streamer struct {
	*task.Task

	input   chan *registry.Event
	monitor monitoring.Monitor

	mtx     sync.Mutex
	clients map[chan []byte]bool
}

func NewStreamer(config *config.Config) (self *Streamer) {
	self = new(Streamer)

	self.clients = make(map[chan []byte]bool)

	self.Task = task.NewTask(config, "streamer").
		WithSubtaskFunc(self.run)

	return
}

func (self *Streamer) WithInputChannel(input chan *registry.Event) *Streamer {
	self.input = input
	return self
}

func (self *Streamer) WithMonitor(monitor monitoring.Monitor) *Streamer {
	self.monitor = monitor
	return self
}

func (self *Streamer) run() (err error) {
	for event := range self.input {
		data, err := event.MarshalBinary()
		if err != nil {
			self.Log.WithError(err).Error("Failed to serialize event")
			continue
		}
		self.broadcast(data)
	}
	return nil
}

func (self *Streamer) broadcast(data []byte) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	for client := range self.clients {
		select {
		case client <- data:
		default:
			// Client is too slow, skip this event for it
		}
	}
}

func (self *Streamer) subscribe() chan []byte {
	client := make(chan []byte, 64)
	self.mtx.Lock()
	self.clients[client] = true
	self.mtx.Unlock()
	self.monitor.GetReport().Gateway.State.WebsocketClients.Inc()
	return client
}

func (self *Streamer) unsubscribe(client chan []byte) {
	self.mtx.Lock()
	delete(self.clients, client)
	self.mtx.Unlock()
	self.monitor.GetReport().Gateway.State.WebsocketClients.Dec()
}

func (self *Streamer) OnStream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Debug("Failed to accept websocket connection")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	client := self.subscribe()
	defer self.unsubscribe(client)

	// Writes stop when either the request or the whole task winds down
	ctx, cancel := onecontext.Merge(self.Ctx, c.Request.Context())
	defer cancel()

	for {
		select {
		case <-self.StopChannel:
			conn.Close(websocket.StatusGoingAway, "shutting down")
			return
		case <-ctx.Done():
			return
		case data := <-client:
			err = conn.Write(ctx, websocket.MessageText, data)
			if err != nil {
				return
			}
			self.monitor.GetReport().Gateway.State.EventsStreamed.Inc()
		}
	}
}
