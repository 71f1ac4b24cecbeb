package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peacockstore/peacock-api/internal/model"
	"github.com/peacockstore/peacock-api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("product belongs to another seller")
	ErrInvalidPrice    = errors.New("prices must not be negative")
	ErrNoImages        = errors.New("at least one image is required")
)

const productCacheTTL = 60 * time.Second

// CatalogService serves products and reviews. In offline mode it answers
// reads from the built-in sample set and rejects every write.
type CatalogService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	redisClient *redis.Client
	gate        *OfflineGate
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	redisClient *redis.Client,
	gate *OfflineGate,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		redisClient: redisClient,
		gate:        gate,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, category model.Category) ([]model.Product, error) {
	if s.gate.Offline() {
		var out []model.Product
		for _, p := range SampleProducts() {
			if category == "" || p.Category == category {
				out = append(out, p)
			}
		}
		return out, nil
	}
	products, err := s.productRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	if s.gate.Offline() {
		for _, p := range SampleProducts() {
			if p.ID == id {
				return &p, nil
			}
		}
		return nil, ErrProductNotFound
	}

	cacheKey := "product:" + strconv.FormatInt(id, 10)
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var p model.Product
			if json.Unmarshal([]byte(cached), &p) == nil {
				return &p, nil
			}
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, sellerEmail string, product *model.Product) error {
	if err := s.gate.Check(); err != nil {
		return err
	}
	if len(product.ImageURLs) == 0 {
		return ErrNoImages
	}
	if product.BuyPrice.IsNegative() || product.RentPrice.IsNegative() {
		return ErrInvalidPrice
	}
	product.SellerEmail = sellerEmail
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, sellerEmail string, product *model.Product) error {
	if err := s.gate.Check(); err != nil {
		return err
	}
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if existing.SellerEmail != sellerEmail {
		return ErrNotOwner
	}
	if len(product.ImageURLs) == 0 {
		return ErrNoImages
	}
	if product.BuyPrice.IsNegative() || product.RentPrice.IsNegative() {
		return ErrInvalidPrice
	}
	product.SellerEmail = existing.SellerEmail
	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	s.invalidateCache(ctx, product.ID)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sellerEmail string, id int64) error {
	if err := s.gate.Check(); err != nil {
		return err
	}
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if existing.SellerEmail != sellerEmail {
		return ErrNotOwner
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidateCache(ctx, id)
	return nil
}

func (s *CatalogService) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	if s.gate.Offline() {
		var out []model.Review
		for _, r := range SampleReviews() {
			if productID == 0 || r.ProductID == productID {
				out = append(out, r)
			}
		}
		return out, nil
	}
	reviews, err := s.reviewRepo.List(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// AddReview accepts reviews from anyone, guests included; authorship is
// a display name only.
func (s *CatalogService) AddReview(ctx context.Context, review *model.Review) error {
	if err := s.gate.Check(); err != nil {
		return err
	}
	if review.Author == "" {
		review.Author = "Guest"
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	return nil
}

func (s *CatalogService) invalidateCache(ctx context.Context, id int64) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, "product:"+strconv.FormatInt(id, 10))
	}
}
