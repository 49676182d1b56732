package response

import (
	"encoding/json"
	"time"

	"nftfactory/src/utils/model"
)

type Event struct {
	Sequence  uint64          `json:"sequence"`
	Id        string          `json:"id"`
	Kind      string          `json:"kind"`
	Registry  string          `json:"registry"`
	Caller    string          `json:"caller"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type GetEvents struct {
	Events []Event `json:"events"`
}

func EventsToResponse(events []*model.Event) *GetEvents {
	out := make([]Event, len(events))
	for i, event := range events {
		out[i] = Event{
			Sequence:  event.Sequence,
			Id:        event.EventId,
			Kind:      event.Kind,
			Registry:  event.Registry,
			Caller:    event.Caller,
			Timestamp: event.Timestamp,
			Payload:   event.Payload.Bytes,
		}
	}

	return &GetEvents{
		Events: out,
	}
}
