package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/renohome/listing-service/internal/entity"
	"github.com/renohome/listing-service/internal/port/repository"
	"go.uber.org/zap"
)

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidListingData = errors.New("invalid listing data")
)

type EventPublisher interface {
	PublishListingCreated(ctx context.Context, listing *entity.Listing) error
	PublishListingUpdated(ctx context.Context, listing *entity.Listing) error
	PublishListingDeleted(ctx context.Context, listingID string) error
	PublishListingViewed(ctx context.Context, listingID string) error
}

type EnquirySender interface {
	SendEnquiry(listingTitle, buyerName, buyerPhone, message string) error
}

type PhotoUploader interface {
	Upload(ctx context.Context, originalFileName string, data []byte) (string, error)
}

// ListingUseCase backs the admin console (CRUD) and the public detail page
// (views, enquiries). Identity is verified upstream by the JWT middleware;
// this layer assumes an already-authenticated admin for writes.
type ListingUseCase struct {
	repo      repository.ListingRepository
	publisher EventPublisher
	mailer    EnquirySender
	photos    PhotoUploader
	logger    *zap.Logger
}

func NewListingUseCase(
	repo repository.ListingRepository,
	publisher EventPublisher,
	mailer EnquirySender,
	photos PhotoUploader,
	logger *zap.Logger,
) *ListingUseCase {
	return &ListingUseCase{
		repo:      repo,
		publisher: publisher,
		mailer:    mailer,
		photos:    photos,
		logger:    logger,
	}
}

type ListingInput struct {
	Title       string
	Price       int64
	Location    string
	Province    string
	District    string
	SubDistrict string
	ZipCode     string
	Type        entity.PropertyType
	Category    entity.Category
	Status      entity.ListingStatus
	Date        string
	Beds        int
	Baths       int
	Area        int
	Description string
	MapURL      string
	Images      []string
	Zones       []entity.Zone
}

// CreateListing stores a new announcement. New listings default to category
// "new", status available and today's date, the same defaults the admin form
// applies.
func (uc *ListingUseCase) CreateListing(ctx context.Context, input ListingInput) (*entity.Listing, error) {
	if input.Title == "" || input.Price < 0 {
		return nil, ErrInvalidListingData
	}

	now := time.Now()
	listing := &entity.Listing{
		Title:       input.Title,
		Price:       input.Price,
		Location:    input.Location,
		Province:    input.Province,
		District:    input.District,
		SubDistrict: input.SubDistrict,
		ZipCode:     input.ZipCode,
		Type:        input.Type,
		Category:    input.Category,
		Status:      input.Status,
		Date:        input.Date,
		Beds:        input.Beds,
		Baths:       input.Baths,
		Area:        input.Area,
		Description: input.Description,
		MapURL:      input.MapURL,
		Images:      trimBlankImages(input.Images),
		Zones:       input.Zones,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if listing.Category == "" {
		listing.Category = entity.CategoryNew
	}
	if listing.Status == "" {
		listing.Status = entity.StatusAvailable
	}
	if listing.Date == "" {
		listing.Date = now.Format(entity.DateLayout)
	}

	id, err := uc.repo.Create(ctx, listing)
	if err != nil {
		uc.logger.Error("Failed to create listing in repository", zap.Error(err), zap.String("title", input.Title))
		return nil, fmt.Errorf("ListingUseCase.CreateListing: failed to create listing in repo: %w", err)
	}
	listing.ID = id

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishListingCreated(ctx, listing); errPub != nil {
			uc.logger.Warn("Failed to publish listing created event",
				zap.Error(errPub),
				zap.String("listing_id", listing.ID),
			)
		}
	}
	return listing, nil
}

// UpdateListing replaces the mutable fields of an existing announcement.
// Category and the original listing date are kept unless the input sets them,
// mirroring the edit form, which never rewrites either.
func (uc *ListingUseCase) UpdateListing(ctx context.Context, id string, input ListingInput) (*entity.Listing, error) {
	listing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		uc.logger.Error("Failed to get listing for update", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("ListingUseCase.UpdateListing: failed to get listing: %w", err)
	}

	listing.Title = input.Title
	listing.Price = input.Price
	listing.Location = input.Location
	listing.Province = input.Province
	listing.District = input.District
	listing.SubDistrict = input.SubDistrict
	listing.ZipCode = input.ZipCode
	listing.Type = input.Type
	listing.Beds = input.Beds
	listing.Baths = input.Baths
	listing.Area = input.Area
	listing.Description = input.Description
	listing.MapURL = input.MapURL
	listing.Images = trimBlankImages(input.Images)
	listing.Zones = input.Zones
	if input.Status != "" {
		listing.Status = input.Status
	}
	if input.Category != "" {
		listing.Category = input.Category
	}
	if input.Date != "" {
		listing.Date = input.Date
	}
	listing.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		uc.logger.Error("Failed to update listing in repository", zap.Error(err), zap.String("listing_id", id))
		return nil, fmt.Errorf("ListingUseCase.UpdateListing: failed to update listing in repo: %w", err)
	}

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishListingUpdated(ctx, listing); errPub != nil {
			uc.logger.Warn("Failed to publish listing updated event",
				zap.Error(errPub),
				zap.String("listing_id", listing.ID),
			)
		}
	}
	return listing, nil
}

func (uc *ListingUseCase) UpdateListingStatus(ctx context.Context, id string, status entity.ListingStatus) error {
	if status != entity.StatusAvailable && status != entity.StatusSold {
		return ErrInvalidListingData
	}

	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		uc.logger.Error("Failed to update listing status", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("ListingUseCase.UpdateListingStatus: failed to update status: %w", err)
	}
	return nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		uc.logger.Error("Failed to delete listing from repository", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("ListingUseCase.DeleteListing: failed to delete listing from repo: %w", err)
	}

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishListingDeleted(ctx, id); errPub != nil {
			uc.logger.Warn("Failed to publish listing deleted event",
				zap.Error(errPub),
				zap.String("listing_id", id),
			)
		}
	}
	return nil
}

func (uc *ListingUseCase) GetListingByID(ctx context.Context, id string) (*entity.Listing, error) {
	listing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("ListingUseCase.GetListingByID: failed to get listing: %w", err)
	}
	return listing, nil
}

// RecordView bumps the view counter for an open listing. Sold listings keep
// their count frozen, matching the storefront's detail-page behaviour.
func (uc *ListingUseCase) RecordView(ctx context.Context, id string) error {
	listing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("ListingUseCase.RecordView: failed to get listing: %w", err)
	}
	if listing.Status == entity.StatusSold {
		return nil
	}

	if err := uc.repo.IncrementViews(ctx, id); err != nil {
		uc.logger.Error("Failed to increment listing views", zap.Error(err), zap.String("listing_id", id))
		return fmt.Errorf("ListingUseCase.RecordView: failed to increment views: %w", err)
	}

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishListingViewed(ctx, id); errPub != nil {
			uc.logger.Warn("Failed to publish listing viewed event",
				zap.Error(errPub),
				zap.String("listing_id", id),
			)
		}
	}
	return nil
}

type EnquiryInput struct {
	ListingID string
	Name      string
	Phone     string
	Message   string
}

// SendEnquiry relays a buyer's contact request to the agent. Delivery failure
// is the caller's to surface; the listing must exist.
func (uc *ListingUseCase) SendEnquiry(ctx context.Context, input EnquiryInput) error {
	listing, err := uc.repo.GetByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListingNotFound
		}
		return fmt.Errorf("ListingUseCase.SendEnquiry: failed to get listing: %w", err)
	}

	if uc.mailer == nil {
		return fmt.Errorf("ListingUseCase.SendEnquiry: no mailer configured")
	}
	if err := uc.mailer.SendEnquiry(listing.Title, input.Name, input.Phone, input.Message); err != nil {
		uc.logger.Error("Failed to send enquiry email",
			zap.Error(err),
			zap.String("listing_id", input.ListingID),
		)
		return fmt.Errorf("ListingUseCase.SendEnquiry: failed to send email: %w", err)
	}

	uc.logger.Info("Enquiry sent", zap.String("listing_id", input.ListingID))
	return nil
}

// UploadPhoto stores a photo and appends its URL to the listing.
func (uc *ListingUseCase) UploadPhoto(ctx context.Context, id, fileName string, data []byte) (string, error) {
	if uc.photos == nil {
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: no photo storage configured")
	}

	listing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrListingNotFound
		}
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: failed to get listing: %w", err)
	}

	url, err := uc.photos.Upload(ctx, fileName, data)
	if err != nil {
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: failed to upload photo: %w", err)
	}

	listing.Images = append(listing.Images, url)
	listing.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Failed to attach photo URL to listing",
			zap.Error(err),
			zap.String("listing_id", id),
			zap.String("url", url),
		)
		return "", fmt.Errorf("ListingUseCase.UploadPhoto: failed to update listing: %w", err)
	}
	return url, nil
}

func trimBlankImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if strings.TrimSpace(img) != "" {
			out = append(out, img)
		}
	}
	return out
}
