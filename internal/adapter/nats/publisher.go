package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/renohome/listing-service/internal/config"
	"github.com/renohome/listing-service/internal/entity"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	ListingCreatedSubject = "listing.created"
	ListingUpdatedSubject = "listing.updated"
	ListingDeletedSubject = "listing.deleted"
	ListingViewedSubject  = "listing.viewed"
)

type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

type DeletedEventPayload struct {
	ID string `json:"id"`
}

type ViewedEventPayload struct {
	ID string `json:"id"`
}

func NewNATSPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) PublishListingCreated(ctx context.Context, listing *entity.Listing) error {
	return p.publishListing(ListingCreatedSubject, listing)
}

func (p *Publisher) PublishListingUpdated(ctx context.Context, listing *entity.Listing) error {
	return p.publishListing(ListingUpdatedSubject, listing)
}

func (p *Publisher) PublishListingDeleted(ctx context.Context, listingID string) error {
	return p.publish(ListingDeletedSubject, DeletedEventPayload{ID: listingID}, listingID)
}

func (p *Publisher) PublishListingViewed(ctx context.Context, listingID string) error {
	return p.publish(ListingViewedSubject, ViewedEventPayload{ID: listingID}, listingID)
}

func (p *Publisher) publishListing(subject string, listing *entity.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		p.logger.Error("Failed to marshal listing for NATS publishing",
			zap.Error(err),
			zap.String("listing_id", listing.ID),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to marshal listing for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", subject),
			zap.Error(err),
			zap.String("listing_id", listing.ID),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Info("Published NATS message",
		zap.String("subject", subject),
		zap.String("listing_id", listing.ID),
	)
	return nil
}

func (p *Publisher) publish(subject string, payload interface{}, listingID string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal payload for NATS publishing",
			zap.Error(err),
			zap.String("listing_id", listingID),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to marshal payload for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", subject),
			zap.Error(err),
			zap.String("listing_id", listingID),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Debug("Published NATS message",
		zap.String("subject", subject),
		zap.String("listing_id", listingID),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
