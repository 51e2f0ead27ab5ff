package messaging

import (
	"context"

	"github.com/jonumhills/townhall-rwa/internal/domain"
)

// Publisher defines the interface for publishing registry events to the
// message stream consumed by the map and marketplace UIs
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishParcelEvent publishes a registry lifecycle event
	PublishParcelEvent(ctx context.Context, event *domain.ParcelEvent) error
	// Close closes the connection
	Close()
}
