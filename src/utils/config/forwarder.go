package config

import (
	"time"

	"github.com/spf13/viper"
)

type Forwarder struct {
	// Webhook that receives collection creation events, empty disables it
	WebhookURL string

	// Request timeout for one delivery attempt
	RequestTimeout time.Duration

	// Delivery retry backoff, 0 is no limit
	MaxElapsedTime time.Duration
	MaxInterval    time.Duration
}

func setForwarderDefaults() {
	viper.SetDefault("Forwarder.WebhookURL", "")
	viper.SetDefault("Forwarder.RequestTimeout", "10s")
	viper.SetDefault("Forwarder.MaxElapsedTime", "5m")
	viper.SetDefault("Forwarder.MaxInterval", "30s")
}
