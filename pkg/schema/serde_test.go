package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/visioncart/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

type MockRegistryClient struct {
	mock.Mock
}

func (c *MockRegistryClient) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := c.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

func TestSerdeClientEventV1(t *testing.T) {
	const subject = "client-events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		assert.ErrorIs(t, err, schema.ErrEmptySubject)
	})

	t.Run("NilIdentifier", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(nil),
		)
		assert.ErrorIs(t, err, schema.ErrNilIdentifier)
	})

	t.Run("IdentifierFails", func(t *testing.T) {
		errRegistry := errors.New("registry is down")
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(0, errRegistry)

		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		assert.ErrorIs(t, err, errRegistry)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(1, nil)

		serde, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		event1 := schema.ClientEventV1{
			SessionID:  "testSession",
			Intent:     "select_product",
			ProductID:  2,
			Position:   -1,
			Category:   "All",
			MaxPrice:   2000,
			View:       "details",
			CartCount:  0,
			CartTotal:  0,
			Version:    1,
			OccurredAt: time.UnixMilli(1760000000000).UTC(),
		}

		encoded, err := serde.Encode(event1)
		require.NoError(t, err)
		require.Greater(t, len(encoded), 5)
		assert.Equal(t, byte(0), encoded[0], "wire header magic byte")

		var event2 schema.ClientEventV1
		require.NoError(t, serde.Decode(encoded, &event2))
		assert.True(t, event1.OccurredAt.Equal(event2.OccurredAt))
		event2.OccurredAt = event1.OccurredAt
		assert.Equal(t, event1, event2)
		schemaIdentifier.AssertExpectations(t)
	})
}

func TestSchemaCreater(t *testing.T) {
	const subject = "client-events-value"
	ctx := t.Context()
	want := sr.Schema{Schema: schema.ClientEventSchemaTextV1, Type: sr.TypeAvro}

	t.Run("Registered", func(t *testing.T) {
		cl := new(MockRegistryClient)
		cl.On("CreateSchema", ctx, subject, want).
			Return(sr.SubjectSchema{ID: 42}, nil)

		id, err := schema.NewSchemaCreater(cl).DetermineID(
			ctx, subject, schema.ClientEventSchemaTextV1,
		)
		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("Failed", func(t *testing.T) {
		errRegistry := errors.New("unauthorized")
		cl := new(MockRegistryClient)
		cl.On("CreateSchema", ctx, subject, want).
			Return(sr.SubjectSchema{}, errRegistry)

		_, err := schema.NewSchemaCreater(cl).DetermineID(
			ctx, subject, schema.ClientEventSchemaTextV1,
		)
		assert.ErrorIs(t, err, errRegistry)
	})
}
