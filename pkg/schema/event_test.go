package schema

import (
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEventV1(t *testing.T) {
	vMarshal := ClientEventV1{
		SessionID:  "6f1c1f8e-8f5e-4a39-9a57-2b1f7c0d9e11",
		Intent:     "add_to_cart",
		ProductID:  3,
		Position:   -1,
		Category:   "Kids",
		MaxPrice:   2000,
		View:       "catalog",
		CartCount:  2,
		CartTotal:  2298,
		Version:    7,
		OccurredAt: time.Date(2026, 10, 15, 12, 30, 0, 125*int(time.Millisecond), time.UTC),
	}

	var eventSchema avro.Schema
	require.NotPanics(t, func() {
		eventSchema = ClientEventV1Avro()
	})

	data, err := avro.Marshal(eventSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal ClientEventV1
	err = avro.Unmarshal(eventSchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.True(t, vMarshal.OccurredAt.Equal(vUnmarshal.OccurredAt))
	vUnmarshal.OccurredAt = vMarshal.OccurredAt
	assert.Equal(t, vMarshal, vUnmarshal)
}

func TestSessionStatsV1(t *testing.T) {
	vMarshal := SessionStatsV1{
		Intents:       9,
		Adds:          3,
		Removes:       1,
		Selections:    2,
		LastCartTotal: 2598,
	}

	var statsSchema avro.Schema
	require.NotPanics(t, func() {
		statsSchema = SessionStatsV1Avro()
	})

	encode := AvroEncodeFn(statsSchema)
	decode := AvroDecodeFn(statsSchema)

	data, err := encode(vMarshal)
	require.NoError(t, err)

	var vUnmarshal SessionStatsV1
	require.NoError(t, decode(data, &vUnmarshal))
	assert.Equal(t, vMarshal, vUnmarshal)
}
