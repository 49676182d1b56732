package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address, the whole operation surface lives under /v1
	RESTListenAddress string

	// HMAC secret the caller identity tokens are verified with
	AuthSecret string

	// Server-wide requests per second before callers get throttled
	RequestsPerSecond int

	// How long collection read responses may be served from cache
	ReadCacheTTL time.Duration

	// Maximum time one request may be handled for
	ServerRequestTimeout time.Duration
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.RESTListenAddress", "0.0.0.0:4000")
	viper.SetDefault("Gateway.AuthSecret", "")
	viper.SetDefault("Gateway.RequestsPerSecond", "100")
	viper.SetDefault("Gateway.ReadCacheTTL", "1s")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
}
