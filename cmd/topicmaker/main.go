package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/visioncart/config"
	"github.com/niksmo/visioncart/internal/adapter"
	"github.com/niksmo/visioncart/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	minISR            = "2"
	delete            = "delete"
	compact           = "compact"
	clientEventsTTL   = "604800000" // 7 days
)

type topicSpec struct {
	name   string
	config map[string]*string
}

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()

	cl := createClient(cfg.Broker.SeedBrokers, cfg.Broker.TLS)
	defer cl.Close()

	specs := topicSpecs(cfg)

	printStart(specs)
	defer printComplete(time.Now())

	if err := makeTopics(sigCtx, cl, specs); err != nil {
		printFail(err)
	}
}

// topicSpecs lists the client events stream and the group table of the
// session stats processor.
func topicSpecs(cfg config.Config) []topicSpec {
	return []topicSpec{
		{
			name: cfg.Broker.Topics.ClientEvents,
			config: map[string]*string{
				"cleanup.policy":      kadm.StringPtr(delete),
				"retention.ms":        kadm.StringPtr(clientEventsTTL),
				"min.insync.replicas": kadm.StringPtr(minISR),
			},
		},
		{
			name: toGroupTable(cfg.Broker.Consumers.SessionStatsGroup),
			config: map[string]*string{
				"cleanup.policy":      kadm.StringPtr(compact),
				"min.insync.replicas": kadm.StringPtr(minISR),
			},
		},
	}
}

func createClient(seedBrokers []string, tlsPaths config.BrokerTLS) *kadm.Client {
	tlsConfig, err := adapter.MakeTLSConfig(
		tlsPaths.CA, tlsPaths.Cert, tlsPaths.Key,
	)
	if err != nil {
		panic(err)
	}

	opts := []kgo.Opt{kgo.SeedBrokers(seedBrokers...)}
	if tlsConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	cl, err := kadm.NewOptClient(opts...)
	if err != nil {
		panic(err) // develop mistake
	}
	return cl
}

func makeTopics(ctx context.Context, cl *kadm.Client, specs []topicSpec) error {
	var errs []error
	for _, spec := range specs {
		res, err := cl.CreateTopic(
			ctx, partitions, replicationFactor, spec.config, spec.name,
		)
		if err == nil {
			err = res.Err
		}

		switch {
		case err == nil:
			fmt.Printf("topic: %q successfully created\n", spec.name)
		case errors.Is(err, kerr.TopicAlreadyExists):
			fmt.Printf("topic: %q already exists\n", spec.name)
		default:
			errs = append(errs, fmt.Errorf("topic %q: %w", spec.name, err))
		}
	}
	return errors.Join(errs...)
}

func printStart(specs []topicSpec) {
	fmt.Println("initializing topics...")
	for _, spec := range specs {
		fmt.Printf("\t- %q (%s)\n", spec.name, *spec.config["cleanup.policy"])
	}
	fmt.Println()
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}

func toGroupTable(group string) string {
	return string(goka.GroupTable(goka.Group(group)))
}
