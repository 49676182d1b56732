package gateway

import (
	"time"

	"nftfactory/src/registry"
	"nftfactory/src/utils/config"
	"nftfactory/src/utils/monitoring"
	"nftfactory/src/utils/task"

	"github.com/robfig/cron"
)

// Cron refreshes listing window statistics on a schedule.
// Observational only: sale flags are never mutated, a token stays flagged
// for sale after its window elapses until the owner toggles it off.
type Cron struct {
	*task.Task

	factory *registry.Factory
	monitor monitoring.Monitor

	runner *cron.Cron
}

func NewCron(config *config.Config) (self *Cron) {
	self = new(Cron)

	self.runner = cron.New()

	self.Task = task.NewTask(config, "cron").
		WithOnBeforeStart(self.schedule).
		WithSubtaskFunc(self.wait).
		WithOnStop(func() {
			self.runner.Stop()
		})

	return
}

func (self *Cron) WithFactory(factory *registry.Factory) *Cron {
	self.factory = factory
	return self
}

func (self *Cron) WithMonitor(monitor monitoring.Monitor) *Cron {
	self.monitor = monitor
	return self
}

func (self *Cron) schedule() (err error) {
	if self.Config.Factory.ListingStatsSchedule == "" {
		self.Log.Info("Listing stats schedule not set, job disabled")
		return nil
	}

	err = self.runner.AddFunc(self.Config.Factory.ListingStatsSchedule, self.refreshListingStats)
	if err != nil {
		return
	}

	self.runner.Start()
	return nil
}

func (self *Cron) wait() (err error) {
	<-self.StopChannel
	return nil
}

func (self *Cron) refreshListingStats() {
	now := time.Now().Unix()

	var active, elapsed int
	for _, addr := range self.factory.CollectionAddresses() {
		col, err := self.factory.Collection(addr)
		if err != nil {
			continue
		}
		a, e := col.ListingStats(now)
		active += a
		elapsed += e
	}

	state := &self.monitor.GetReport().Factory.State
	state.ListingsActive.Store(uint64(active))
	state.ListingsElapsed.Store(uint64(elapsed))

	self.Log.WithField("active", active).WithField("elapsed", elapsed).Debug("Refreshed listing stats")
}
