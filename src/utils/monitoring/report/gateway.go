package report

import (
	"go.uber.org/atomic"
)

type GatewayErrors struct {
	AuthFailures    atomic.Int64 `json:"auth_failures"`
	RedisPublish    atomic.Int64 `json:"redis_publish"`
	WebhookDelivery atomic.Int64 `json:"webhook_delivery"`
}

type GatewayState struct {
	WebsocketClients  atomic.Int64  `json:"websocket_clients"`
	EventsPublished   atomic.Uint64 `json:"events_published"`
	EventsStreamed    atomic.Uint64 `json:"events_streamed"`
	WebhooksDelivered atomic.Uint64 `json:"webhooks_delivered"`
}

type GatewayReport struct {
	State  GatewayState  `json:"state"`
	Errors GatewayErrors `json:"errors"`
}
