package monitor_factory

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	StartTimestamp                *prometheus.Desc
	UpForSeconds                  *prometheus.Desc
	ProjectsSubmitted             *prometheus.Desc
	ProjectsApproved              *prometheus.Desc
	ProjectsRejected              *prometheus.Desc
	CollectionsCreated721         *prometheus.Desc
	CollectionsCreated1155        *prometheus.Desc
	TokensMinted                  *prometheus.Desc
	EventsEmitted                 *prometheus.Desc
	AverageEventsEmittedPerMinute *prometheus.Desc
	ListingsActive                *prometheus.Desc
	ListingsElapsed               *prometheus.Desc
	WebsocketClients              *prometheus.Desc
	EventsPublished               *prometheus.Desc
	EventsStreamed                *prometheus.Desc
	WebhooksDelivered             *prometheus.Desc

	UnauthorizedErrors    *prometheus.Desc `json:""`
	DbEventInsertErrors   *prometheus.Desc `json:""`
	DbStateUpdateErrors   *prometheus.Desc `json:""`
	AuthFailures          *prometheus.Desc `json:""`
	RedisPublishErrors    *prometheus.Desc `json:""`
	WebhookDeliveryErrors *prometheus.Desc `json:""`
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "nftfactory",
	}

	return &Collector{
		StartTimestamp:                prometheus.NewDesc("start_timestamp", "", nil, labels),
		UpForSeconds:                  prometheus.NewDesc("up_for_seconds", "", nil, labels),
		ProjectsSubmitted:             prometheus.NewDesc("projects_submitted", "", nil, labels),
		ProjectsApproved:              prometheus.NewDesc("projects_approved", "", nil, labels),
		ProjectsRejected:              prometheus.NewDesc("projects_rejected", "", nil, labels),
		CollectionsCreated721:         prometheus.NewDesc("collections_created_721", "", nil, labels),
		CollectionsCreated1155:        prometheus.NewDesc("collections_created_1155", "", nil, labels),
		TokensMinted:                  prometheus.NewDesc("tokens_minted", "", nil, labels),
		EventsEmitted:                 prometheus.NewDesc("events_emitted", "", nil, labels),
		AverageEventsEmittedPerMinute: prometheus.NewDesc("average_events_emitted_per_minute", "", nil, labels),
		ListingsActive:                prometheus.NewDesc("listings_active", "", nil, labels),
		ListingsElapsed:               prometheus.NewDesc("listings_elapsed", "", nil, labels),
		WebsocketClients:              prometheus.NewDesc("websocket_clients", "", nil, labels),
		EventsPublished:               prometheus.NewDesc("events_published", "", nil, labels),
		EventsStreamed:                prometheus.NewDesc("events_streamed", "", nil, labels),
		WebhooksDelivered:             prometheus.NewDesc("webhooks_delivered", "", nil, labels),

		// Errors
		UnauthorizedErrors:    prometheus.NewDesc("error_unauthorized", "", nil, labels),
		DbEventInsertErrors:   prometheus.NewDesc("error_db_event_insert", "", nil, labels),
		DbStateUpdateErrors:   prometheus.NewDesc("error_db_state_update", "", nil, labels),
		AuthFailures:          prometheus.NewDesc("error_auth_failure", "", nil, labels),
		RedisPublishErrors:    prometheus.NewDesc("error_redis_publish", "", nil, labels),
		WebhookDeliveryErrors: prometheus.NewDesc("error_webhook_delivery", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.StartTimestamp
	ch <- self.UpForSeconds
	ch <- self.ProjectsSubmitted
	ch <- self.ProjectsApproved
	ch <- self.ProjectsRejected
	ch <- self.CollectionsCreated721
	ch <- self.CollectionsCreated1155
	ch <- self.TokensMinted
	ch <- self.EventsEmitted
	ch <- self.AverageEventsEmittedPerMinute
	ch <- self.ListingsActive
	ch <- self.ListingsElapsed
	ch <- self.WebsocketClients
	ch <- self.EventsPublished
	ch <- self.EventsStreamed
	ch <- self.WebhooksDelivered

	// Errors
	ch <- self.UnauthorizedErrors
	ch <- self.DbEventInsertErrors
	ch <- self.DbStateUpdateErrors
	ch <- self.AuthFailures
	ch <- self.RedisPublishErrors
	ch <- self.WebhookDeliveryErrors
}

// Collect implements required collect function for all prometheus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(self.StartTimestamp, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.StartTimestamp.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.UpForSeconds.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProjectsSubmitted, prometheus.CounterValue, float64(self.monitor.Report.Factory.State.ProjectsSubmitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProjectsApproved, prometheus.CounterValue, float64(self.monitor.Report.Factory.State.ProjectsApproved.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProjectsRejected, prometheus.CounterValue, float64(self.monitor.Report.Factory.State.ProjectsRejected.Load()))
	ch <- prometheus.MustNewConstMetric(self.CollectionsCreated721, prometheus.CounterValue, float64(self.monitor.Report.Factory.State.CollectionsCreated721.Load()))
	ch <- prometheus.MustNewConstMetric(self.CollectionsCreated1155, prometheus.CounterValue, float64(self.monitor.Report.Factory.State.CollectionsCreated1155.Load()))
	ch <- prometheus.MustNewConstMetric(self.TokensMinted, prometheus.CounterValue, float64(self.monitor.Report.Factory.State.TokensMinted.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsEmitted, prometheus.CounterValue, float64(self.monitor.Report.Factory.State.EventsEmitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.AverageEventsEmittedPerMinute, prometheus.GaugeValue, self.monitor.Report.Factory.State.AverageEventsEmittedPerMinute.Load())
	ch <- prometheus.MustNewConstMetric(self.ListingsActive, prometheus.GaugeValue, float64(self.monitor.Report.Factory.State.ListingsActive.Load()))
	ch <- prometheus.MustNewConstMetric(self.ListingsElapsed, prometheus.GaugeValue, float64(self.monitor.Report.Factory.State.ListingsElapsed.Load()))
	ch <- prometheus.MustNewConstMetric(self.WebsocketClients, prometheus.GaugeValue, float64(self.monitor.Report.Gateway.State.WebsocketClients.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsPublished, prometheus.CounterValue, float64(self.monitor.Report.Gateway.State.EventsPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsStreamed, prometheus.CounterValue, float64(self.monitor.Report.Gateway.State.EventsStreamed.Load()))
	ch <- prometheus.MustNewConstMetric(self.WebhooksDelivered, prometheus.CounterValue, float64(self.monitor.Report.Gateway.State.WebhooksDelivered.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.UnauthorizedErrors, prometheus.CounterValue, float64(self.monitor.Report.Factory.Errors.Unauthorized.Load()))
	ch <- prometheus.MustNewConstMetric(self.DbEventInsertErrors, prometheus.CounterValue, float64(self.monitor.Report.Factory.Errors.DbEventInsert.Load()))
	ch <- prometheus.MustNewConstMetric(self.DbStateUpdateErrors, prometheus.CounterValue, float64(self.monitor.Report.Factory.Errors.DbStateUpdate.Load()))
	ch <- prometheus.MustNewConstMetric(self.AuthFailures, prometheus.CounterValue, float64(self.monitor.Report.Gateway.Errors.AuthFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisPublishErrors, prometheus.CounterValue, float64(self.monitor.Report.Gateway.Errors.RedisPublish.Load()))
	ch <- prometheus.MustNewConstMetric(self.WebhookDeliveryErrors, prometheus.CounterValue, float64(self.monitor.Report.Gateway.Errors.WebhookDelivery.Load()))
}
