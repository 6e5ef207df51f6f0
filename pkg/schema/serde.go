package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var (
	ErrTooFewOpts    = errors.New("too few options")
	ErrEmptySubject  = errors.New("subject is empty string")
	ErrNilIdentifier = errors.New("schema identifier is nil")
)

// Serde encodes values with the schema registry wire header: a magic byte
// and the schema id followed by the avro payload.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return ErrEmptySubject
		}
		so.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if si == nil {
			return ErrNilIdentifier
		}
		so.si = si
		return nil
	}
}

// NewSerdeClientEventV1 returns a serde for [ClientEventV1] values.
//
// Both [SubjectOpt] and [SchemaIdentifierOpt] are required.
func NewSerdeClientEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeClientEventV1"

	s, err := newRegisteredSerde[ClientEventV1](
		ctx, ClientEventSchemaTextV1, opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// newRegisteredSerde registers schemaText under the subject and binds the
// returned id to values of type T.
func newRegisteredSerde[T any](
	ctx context.Context, schemaText string, opts ...Opt,
) (*sr.Serde, error) {
	if len(opts) != 2 {
		return nil, ErrTooFewOpts
	}

	var so serdeOpts
	for _, o := range opts {
		if err := o(&so); err != nil {
			return nil, err
		}
	}

	avroSchema, err := avro.Parse(schemaText)
	if err != nil {
		return nil, err
	}

	id, err := so.si.DetermineID(ctx, so.subject, schemaText)
	if err != nil {
		return nil, err
	}

	var example T
	s := new(sr.Serde)
	s.Register(
		id,
		example,
		sr.EncodeFn(AvroEncodeFn(avroSchema)),
		sr.DecodeFn(AvroDecodeFn(avroSchema)),
	)
	return s, nil
}
