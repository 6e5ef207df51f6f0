package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt connects a [kgo.Client] producing to topic. TLS is used
// when tlsConfig is not nil.
func ProducerClientOpt(
	ctx context.Context,
	seedBrokers []string,
	topic string,
	tlsConfig *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}
		if tlsConfig != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerRawClientOpt uses an already built client.
func ProducerRawClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

// brokerSaramaConfig returns the goka default sarama config with TLS
// enabled when tlsConfig is not nil.
func brokerSaramaConfig(tlsConfig *tls.Config) *sarama.Config {
	cfg := goka.DefaultConfig()
	if tlsConfig != nil {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = tlsConfig
	}
	return cfg
}

// brokerProcOpts makes every client of a processor dial the brokers with
// the same sarama config.
func brokerProcOpts(tlsConfig *tls.Config) []goka.ProcessorOption {
	cfg := brokerSaramaConfig(tlsConfig)
	return []goka.ProcessorOption{
		withNonlogProcOpt(),
		goka.WithConsumerGroupBuilder(goka.ConsumerGroupBuilderWithConfig(cfg)),
		goka.WithConsumerSaramaBuilder(goka.SaramaConsumerBuilderWithConfig(cfg)),
		goka.WithProducerBuilder(goka.ProducerBuilderWithConfig(cfg)),
		goka.WithTopicManagerBuilder(
			goka.TopicManagerBuilderWithConfig(cfg, goka.NewTopicManagerConfig()),
		),
	}
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func clientEventToSchemaV1(v domain.ClientEvent) (s schema.ClientEventV1) {
	s.SessionID = v.SessionID
	s.Intent = string(v.Intent)
	s.ProductID = v.ProductID
	s.Position = int64(v.Position)
	s.Category = string(v.Category)
	s.MaxPrice = v.MaxPrice
	s.View = string(v.View)
	s.CartCount = int64(v.CartCount)
	s.CartTotal = v.CartTotal
	s.Version = int64(v.Version)
	s.OccurredAt = v.OccurredAt
	return
}

func clientEventFromSchemaV1(s schema.ClientEventV1) (v domain.ClientEvent) {
	v.SessionID = s.SessionID
	v.Intent = domain.Intent(s.Intent)
	v.ProductID = s.ProductID
	v.Position = int(s.Position)
	v.Category = domain.Category(s.Category)
	v.MaxPrice = s.MaxPrice
	v.View = domain.ViewKind(s.View)
	v.CartCount = int(s.CartCount)
	v.CartTotal = s.CartTotal
	v.Version = uint64(s.Version)
	v.OccurredAt = s.OccurredAt
	return
}

func sessionStatsToSchemaV1(v domain.SessionStats) schema.SessionStatsV1 {
	return schema.SessionStatsV1{
		Intents:       v.Intents,
		Adds:          v.Adds,
		Removes:       v.Removes,
		Selections:    v.Selections,
		LastCartTotal: v.LastCartTotal,
	}
}

func sessionStatsFromSchemaV1(s schema.SessionStatsV1) domain.SessionStats {
	return domain.SessionStats{
		Intents:       s.Intents,
		Adds:          s.Adds,
		Removes:       s.Removes,
		Selections:    s.Selections,
		LastCartTotal: s.LastCartTotal,
	}
}
