package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/niksmo/product-dashboard/config"
	"github.com/niksmo/product-dashboard/internal/adapter"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	partitions        = 3
	replicationFactor = 3
	deletePolicy      = "delete"
	compactPolicy     = "compact"
)

type topicSpec struct {
	name          string
	cleanupPolicy string
}

func main() {
	sigCtx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg := config.Load()

	cl, err := createClient(cfg.Broker)
	if err != nil {
		printFail(err)
		return
	}
	defer cl.Close()

	specs := topicSpecs(cfg.Broker.Topics)

	printStart(specs)
	defer printComplete(time.Now())

	var errs []error
	for _, spec := range specs {
		if err := makeTopic(sigCtx, cl, spec); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		printFail(err)
	}
}

// topicSpecs keeps every product snapshot and only the latest summary per key.
func topicSpecs(topics config.Topics) []topicSpec {
	return []topicSpec{
		{topics.ProductSnapshots, deletePolicy},
		{topics.DashboardSummaries, compactPolicy},
	}
}

func createClient(broker config.Broker) (*kadm.Client, error) {
	opts := []kgo.Opt{kgo.SeedBrokers(broker.SeedBrokers...)}

	if broker.TLSEnabled() {
		tlsConfig, err := adapter.MakeTLSConfig(
			broker.TLS.CA, broker.TLS.Cert, broker.TLS.Key,
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.DialTLSConfig(tlsConfig))
	}

	return kadm.NewOptClient(opts...)
}

func makeTopic(ctx context.Context, cl *kadm.Client, spec topicSpec) error {
	minISR := "2"
	cleanupPolicy := spec.cleanupPolicy

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		spec.name,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, fmt.Errorf("topic %q: %w", res.Topic, res.Err))
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}
	return errors.Join(errs...)
}

func printStart(specs []topicSpec) {
	fmt.Println("initializing topics...")
	for _, spec := range specs {
		fmt.Printf("\t- %q (%s)\n", spec.name, spec.cleanupPolicy)
	}
	fmt.Println()
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}
