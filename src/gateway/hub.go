package gateway

import (
	"nftfactory/src/registry"
	"nftfactory/src/utils/config"
	"nftfactory/src/utils/monitoring"
	"nftfactory/src/utils/task"
)

// Hub fans the factory event log out to every consumer. The store gets a
// reliable feed, everything else is best effort: a slow websocket client or a
// saturated publisher queue never stalls the log.
type Hub struct {
	*task.Task

	input   <-chan *registry.Event
	monitor monitoring.Monitor

	reliable   chan *registry.Event
	bestEffort []chan *registry.Event
}

func NewHub(config *config.Config) (self *Hub) {
	self = new(Hub)

	self.Task = task.NewTask(config, "hub").
		WithSubtaskFunc(self.run)

	return
}

func (self *Hub) WithInputChannel(input <-chan *registry.Event) *Hub {
	self.input = input
	return self
}

func (self *Hub) WithMonitor(monitor monitoring.Monitor) *Hub {
	self.monitor = monitor
	return self
}

// WithReliableOutput gets every event, the send blocks until accepted.
func (self *Hub) WithReliableOutput(out chan *registry.Event) *Hub {
	self.reliable = out
	return self
}

func (self *Hub) WithOutput(out chan *registry.Event) *Hub {
	self.bestEffort = append(self.bestEffort, out)
	return self
}

func (self *Hub) run() (err error) {
	defer func() {
		if self.reliable != nil {
			close(self.reliable)
		}
		for _, out := range self.bestEffort {
			close(out)
		}
	}()

	for {
		select {
		case <-self.StopChannel:
			return nil
		case event, ok := <-self.input:
			if !ok {
				return nil
			}

			self.count(event)

			if self.reliable != nil {
				self.reliable <- event
			}
			for _, out := range self.bestEffort {
				select {
				case out <- event:
				default:
					self.Log.WithField("kind", event.Kind).Warn("Consumer queue is full, dropping event")
				}
			}
		}
	}
}

func (self *Hub) count(event *registry.Event) {
	state := &self.monitor.GetReport().Factory.State
	state.EventsEmitted.Inc()

	switch event.Kind {
	case registry.EventProjectSubmitted:
		state.ProjectsSubmitted.Inc()
	case registry.EventProjectApproved:
		state.ProjectsApproved.Inc()
	case registry.EventProjectRejected:
		state.ProjectsRejected.Inc()
	case registry.EventCollectionCreated:
		if event.CollectionKind == registry.KindERC1155 {
			state.CollectionsCreated1155.Inc()
		} else {
			state.CollectionsCreated721.Inc()
		}
	case registry.EventTokenMinted:
		state.TokensMinted.Add(event.Amount)
	}
}
