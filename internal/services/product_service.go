package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"catalogstore/internal/assets"
	"catalogstore/internal/caching"
	"catalogstore/internal/models"
	"catalogstore/internal/repositories"
	"catalogstore/internal/serviceerrors"
)

const productCacheTTL = 15 * time.Minute

type ProductService interface {
	Create(ctx context.Context, input *models.ProductInput) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, id int64, input *models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	assetStore   assets.Store
	cacheService caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, assetStore assets.Store, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		assetStore:   assetStore,
		cacheService: cacheService,
	}
}

func validateInput(input *models.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return serviceerrors.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(input.Brand) == "" {
		return serviceerrors.NewValidationError("brand", "brand is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return serviceerrors.NewValidationError("category", "category is required")
	}
	if input.Price != nil && *input.Price < 0 {
		return serviceerrors.NewValidationError("price", "price cannot be negative")
	}
	return nil
}

// Create validates the input, stores the uploaded image, then persists the
// record. The database write only happens after the asset write succeeded.
func (s *productService) Create(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	if input.Image == nil || input.Image.Size == 0 {
		return nil, serviceerrors.NewValidationError("image", "image file is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	assetName, err := s.assetStore.Save(ctx, input.Image.Reader, input.Image.OriginalName)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          input.Name,
		Brand:         input.Brand,
		Category:      input.Category,
		Description:   input.Description,
		ImageFileName: assetName,
		CreatedAt:     time.Now(),
	}
	if input.Price != nil {
		product.Price = *input.Price
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID serves from the cache when possible; cache failures fall through to
// the database.
func (s *productService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if cached, err := s.cacheService.GetProduct(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for product %d: %v", id, err)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serviceerrors.NewNotFoundError(id)
		}
		return nil, err
	}

	if cacheErr := s.cacheService.SetProduct(ctx, product, productCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache product %d: %v", id, cacheErr)
	}
	return product, nil
}

// Update loads the product, optionally replaces its image, overwrites the
// mutable fields, and persists. The old asset is deleted before the new one is
// stored; a failed delete is logged and ignored so a missing file never blocks
// the record update. A failed store of the new asset aborts with the record
// unchanged.
func (s *productService) Update(ctx context.Context, id int64, input *models.ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serviceerrors.NewNotFoundError(id)
		}
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// A zero-byte upload counts as no image; the stored asset stays.
	if input.Image != nil && input.Image.Size > 0 {
		if delErr := s.assetStore.Delete(ctx, product.ImageFileName); delErr != nil {
			log.Printf("Failed to delete old asset %s for product %d: %v", product.ImageFileName, id, delErr)
		}

		assetName, err := s.assetStore.Save(ctx, input.Image.Reader, input.Image.OriginalName)
		if err != nil {
			return nil, err
		}
		product.ImageFileName = assetName
	}

	product.Name = input.Name
	product.Brand = input.Brand
	product.Category = input.Category
	product.Description = input.Description
	if input.Price != nil {
		product.Price = *input.Price
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.DeleteProduct(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for product %d: %v", id, cacheErr)
	}
	return product, nil
}

// Delete removes the record even when the asset delete fails; an orphaned
// file is preferred over an undeletable record.
func (s *productService) Delete(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return serviceerrors.NewNotFoundError(id)
		}
		return err
	}

	if delErr := s.assetStore.Delete(ctx, product.ImageFileName); delErr != nil {
		log.Printf("Failed to delete asset %s for product %d: %v", product.ImageFileName, id, delErr)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeleteProduct(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for product %d: %v", id, cacheErr)
	}
	return nil
}

// List returns every product, newest identifier first.
func (s *productService) List(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx)
}
