package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// Publisher pushes broadcast announcements to mobile apps subscribed to a
// per-audience topic. A nil *Publisher is valid and drops every message,
// which is how deployments without messaging credentials run.
type Publisher struct {
	client      *messaging.Client
	topicPrefix string
}

func NewPublisher(ctx context.Context, app *firebase.App, topicPrefix string) (*Publisher, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init messaging client: %w", err)
	}
	return &Publisher{client: client, topicPrefix: topicPrefix}, nil
}

// PublishBroadcast fans the announcement out to the audience topic, e.g.
// "broadcasts-all" or "broadcasts-couples". Apps subscribe to the topic that
// matches their user's role, so couples-only announcements never reach guest
// devices. Best effort: a failed push must never fail the broadcast write, so
// callers log and move on.
func (p *Publisher) PublishBroadcast(ctx context.Context, target, title, body string) error {
	if p == nil || p.client == nil {
		return nil
	}
	_, err := p.client.Send(ctx, &messaging.Message{
		Topic: p.topicPrefix + "-" + target,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	})
	return err
}
