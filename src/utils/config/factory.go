package config

import (
	"time"

	"github.com/spf13/viper"
)

type Factory struct {
	// Identity that owns the factory registry at boot
	Owner string

	// Ceiling on maxSupply of newly created collections
	MaxCollectionSupply uint64

	// Buffered capacity of the event log channel
	EventBufferSize int

	// How many events are saved in one transaction
	StoreBatchSize int

	// How often is an insert triggered
	StoreInterval time.Duration

	// Flush retry backoff, 0 means no limit
	StoreMaxElapsedTime time.Duration
	StoreMaxInterval    time.Duration

	// Cron spec of the listing stats job, empty disables it
	ListingStatsSchedule string
}

func setFactoryDefaults() {
	viper.SetDefault("Factory.Owner", "0xf4c70r7-0wn3r")
	viper.SetDefault("Factory.MaxCollectionSupply", "100")
	viper.SetDefault("Factory.EventBufferSize", "1024")
	viper.SetDefault("Factory.StoreBatchSize", "50")
	viper.SetDefault("Factory.StoreInterval", "1s")
	viper.SetDefault("Factory.StoreMaxElapsedTime", "5m")
	viper.SetDefault("Factory.StoreMaxInterval", "30s")
	viper.SetDefault("Factory.ListingStatsSchedule", "@every 1m")
}
