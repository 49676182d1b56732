package monitor_factory

import (
	"net/http"
	"time"

	"nftfactory/src/utils/monitoring/report"
	"nftfactory/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	historySize int

	collector *Collector

	// Event emission speed
	EventCounts *deque.Deque[uint64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:     &report.RunReport{},
		Factory: &report.FactoryReport{},
		Gateway: &report.GatewayReport{},
	}

	// Initialization
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorEvents)
	return
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize

	self.EventCounts = deque.New[uint64](self.historySize)

	return self
}

func (self *Monitor) Clear() {
	self.EventCounts.Clear()
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

// Measure event emission speed
func (self *Monitor) monitorEvents() (err error) {
	loaded := self.Report.Factory.State.EventsEmitted.Load()
	if loaded == 0 {
		// Neglect the first 0
		return
	}

	self.EventCounts.PushBack(loaded)
	if self.EventCounts.Len() > self.historySize {
		self.EventCounts.PopFront()
	}
	value := float64(self.EventCounts.Back()-self.EventCounts.Front()) / float64(self.EventCounts.Len())
	self.Report.Factory.State.AverageEventsEmittedPerMinute.Store(value)
	return
}

func (self *Monitor) IsOK() bool {
	// The service is request driven, there's no throughput to watch.
	// Serving this endpoint already proves liveness.
	return true
}

func (self *Monitor) OnGetState(c *gin.Context) {
	self.Report.Run.State.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()))

	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) OnGetHealth(c *gin.Context) {
	if self.IsOK() {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusServiceUnavailable)
	}
}
