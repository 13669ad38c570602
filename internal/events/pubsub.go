package events

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/verinews/apiserver/config"
	"google.golang.org/api/option"
)

// PubSubPublisher publishes lifecycle events to a Google Pub/Sub topic.
type PubSubPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

var _ Publisher = (*PubSubPublisher)(nil)

// NewPubSubPublisher connects and ensures the event topic exists.
func NewPubSubPublisher(ctx context.Context, cfg config.PubSubConfig, topicName string) (*PubSubPublisher, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("pubsub project id is required")
	}
	if strings.TrimSpace(topicName) == "" {
		return nil, errors.New("pubsub topic is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, err
	}

	topic := client.Topic(topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	if !exists {
		topic, err = client.CreateTopic(ctx, topicName)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
	}

	return &PubSubPublisher{
		client: client,
		topic:  topic,
	}, nil
}

// Publish sends the event to the topic and returns the server-assigned
// message id.
func (p *PubSubPublisher) Publish(ctx context.Context, event LifecycleEvent) (string, error) {
	data, err := encode(event)
	if err != nil {
		return "", err
	}
	result := p.topic.Publish(ctx, &pubsub.Message{Data: data})
	return result.Get(ctx)
}

// Close stops the topic and closes the underlying client.
func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
