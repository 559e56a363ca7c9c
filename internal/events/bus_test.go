package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"servicapp/internal/models"
)

func TestBusPublishOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TopicPostCreated, func(ctx context.Context, e Event) {
		got = append(got, "primero")
	})
	bus.Subscribe(TopicPostCreated, func(ctx context.Context, e Event) {
		got = append(got, "segundo")
	})

	bus.Publish(context.Background(), PostCreated{Post: models.Post{PostID: "p1"}})

	assert.Equal(t, []string{"primero", "segundo"}, got)
}

func TestBusTopicIsolation(t *testing.T) {
	bus := NewBus()

	var calls int
	bus.Subscribe(TopicApplicationReceived, func(ctx context.Context, e Event) {
		calls++
	})

	bus.Publish(context.Background(), PostsUpdated{ContractorID: "c1"})
	assert.Equal(t, 0, calls)

	bus.Publish(context.Background(), ApplicationReceived{WorkerName: "Ana"})
	assert.Equal(t, 1, calls)
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), ReviewSubmitted{NewRating: 4.5})
	})
}

func TestBusEventPayload(t *testing.T) {
	bus := NewBus()

	var received ApplicationResolved
	bus.Subscribe(TopicApplicationResolved, func(ctx context.Context, e Event) {
		received = e.(ApplicationResolved)
	})

	bus.Publish(context.Background(), ApplicationResolved{
		Application: models.PostApplication{ApplicationID: "a1", WorkerID: "w1"},
		Post:        models.Post{PostID: "p1", Title: "Reparar techo"},
		Accepted:    true,
	})

	assert.Equal(t, "a1", received.Application.ApplicationID)
	assert.Equal(t, "Reparar techo", received.Post.Title)
	assert.True(t, received.Accepted)
}
