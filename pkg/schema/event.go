package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "visioncart",
	"name": "client_event",
	"fields" : [
		{"name": "session_id", "type": "string"},
		{"name": "intent", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "position", "type": "long"},
		{"name": "category", "type": "string"},
		{"name": "max_price", "type": "long"},
		{"name": "view", "type": "string"},
		{"name": "cart_count", "type": "long"},
		{"name": "cart_total", "type": "long"},
		{"name": "version", "type": "long"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const SessionStatsSchemaTextV1 = `{
	"type": "record",
	"namespace": "visioncart",
	"name": "session_stats",
	"fields" : [
		{"name": "intents", "type": "long"},
		{"name": "adds", "type": "long"},
		{"name": "removes", "type": "long"},
		{"name": "selections", "type": "long"},
		{"name": "last_cart_total", "type": "long"}
	]
}`

type ClientEventV1 struct {
	SessionID  string    `avro:"session_id"`
	Intent     string    `avro:"intent"`
	ProductID  int64     `avro:"product_id"`
	Position   int64     `avro:"position"`
	Category   string    `avro:"category"`
	MaxPrice   int64     `avro:"max_price"`
	View       string    `avro:"view"`
	CartCount  int64     `avro:"cart_count"`
	CartTotal  int64     `avro:"cart_total"`
	Version    int64     `avro:"version"`
	OccurredAt time.Time `avro:"occurred_at"`
}

type SessionStatsV1 struct {
	Intents       int64 `avro:"intents"`
	Adds          int64 `avro:"adds"`
	Removes       int64 `avro:"removes"`
	Selections    int64 `avro:"selections"`
	LastCartTotal int64 `avro:"last_cart_total"`
}

// ClientEventV1Avro panics if the schema text is invalid.
func ClientEventV1Avro() avro.Schema {
	return avro.MustParse(ClientEventSchemaTextV1)
}

// SessionStatsV1Avro panics if the schema text is invalid.
func SessionStatsV1Avro() avro.Schema {
	return avro.MustParse(SessionStatsSchemaTextV1)
}
