package gateway

import (
	"fmt"

	"nftfactory/src/registry"
	"nftfactory/src/utils/build_info"
	"nftfactory/src/utils/config"
	"nftfactory/src/utils/monitoring"
	"nftfactory/src/utils/task"

	"github.com/go-resty/resty/v2"
)

// Forwarder delivers collection creations to the configured webhook.
type Forwarder struct {
	*task.Task

	input   chan *registry.Event
	monitor monitoring.Monitor

	client *resty.Client
}

func NewForwarder(config *config.Config) (self *Forwarder) {
	self = new(Forwarder)

	self.client = resty.New().
		SetTimeout(config.Forwarder.RequestTimeout).
		SetHeader("User-Agent", "nftfactory/"+build_info.Version).
		SetHeader("Content-Type", "application/json")

	self.Task = task.NewTask(config, "forwarder").
		WithSubtaskFunc(self.run)

	return
}

func (self *Forwarder) WithInputChannel(input chan *registry.Event) *Forwarder {
	self.input = input
	return self
}

func (self *Forwarder) WithMonitor(monitor monitoring.Monitor) *Forwarder {
	self.monitor = monitor
	return self
}

func (self *Forwarder) run() (err error) {
	for event := range self.input {
		if event.Kind != registry.EventCollectionCreated {
			continue
		}
		self.deliver(event)
	}
	return nil
}

func (self *Forwarder) deliver(event *registry.Event) {
	err := task.NewRetry().
		WithContext(self.Ctx).
		WithMaxElapsedTime(self.Config.Forwarder.MaxElapsedTime).
		WithMaxInterval(self.Config.Forwarder.MaxInterval).
		WithOnError(func(err error) {
			self.Log.WithError(err).Warn("Failed to deliver webhook, retrying")
			self.monitor.GetReport().Gateway.Errors.WebhookDelivery.Inc()
		}).
		Run(func() (err error) {
			resp, err := self.client.R().
				SetContext(self.Ctx).
				SetBody(event).
				Post(self.Config.Forwarder.WebhookURL)
			if err != nil {
				return
			}
			if resp.IsError() {
				return fmt.Errorf("webhook responded with %s", resp.Status())
			}
			return nil
		})
	if err != nil {
		self.Log.WithError(err).
			WithField("collection", event.Collection).
			Error("Failed to deliver webhook, giving up")
		return
	}
	self.monitor.GetReport().Gateway.State.WebhooksDelivered.Inc()
}
