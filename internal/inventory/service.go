package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/eight22lax/stringshop-backend/pkg/enums"
	pkgerrors "github.com/eight22lax/stringshop-backend/pkg/errors"
	"github.com/eight22lax/stringshop-backend/pkg/logger"
	"github.com/eight22lax/stringshop-backend/pkg/redis"

	"github.com/eight22lax/stringshop-backend/pkg/db/models"
)

const storefrontCacheTTL = time.Minute

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type storefrontCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service defines catalog operations on top of the inventory repository.
type Service interface {
	Storefront(ctx context.Context) (*StorefrontView, error)
	AdminList(ctx context.Context) ([]ItemView, error)
	GetByPriceID(ctx context.Context, priceID string) (*ItemView, error)
	UpdateStock(ctx context.Context, priceID string, stock int) (*ItemView, error)
	SyncFromStripe(ctx context.Context) (*SyncResult, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	cache   storefrontCache
	catalog StripeCatalogClient
	logg    *logger.Logger
}

// ServiceParams bundles the inventory service dependencies.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Cache   storefrontCache
	Catalog StripeCatalogClient
	Logger  *logger.Logger
}

// NewService builds an inventory service with the required dependencies. The
// cache and catalog client are optional; without them the storefront skips
// caching and SyncFromStripe is unavailable.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		cache:   params.Cache,
		catalog: params.Catalog,
		logg:    params.Logger,
	}, nil
}

func (s *service) Storefront(ctx context.Context) (*StorefrontView, error) {
	if view := s.cachedStorefront(ctx); view != nil {
		return view, nil
	}

	items, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}

	grouped := make(map[enums.ProductCategory][]ItemView)
	for i := range items {
		if items[i].Stock <= 0 {
			continue
		}
		view := toItemView(&items[i])
		grouped[view.Category] = append(grouped[view.Category], view)
	}

	storefront := &StorefrontView{Categories: make([]CategoryGroup, 0, len(grouped))}
	for _, category := range enums.ProductCategories() {
		if views, ok := grouped[category]; ok {
			storefront.Categories = append(storefront.Categories, CategoryGroup{
				Category: category,
				Items:    views,
			})
		}
	}

	s.cacheStorefront(ctx, storefront)
	return storefront, nil
}

func (s *service) AdminList(ctx context.Context) ([]ItemView, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	views := make([]ItemView, 0, len(items))
	for i := range items {
		views = append(views, toItemView(&items[i]))
	}
	return views, nil
}

func (s *service) GetByPriceID(ctx context.Context, priceID string) (*ItemView, error) {
	if priceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price id required")
	}
	item, err := s.repo.FindByPriceID(ctx, priceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	view := toItemView(item)
	return &view, nil
}

func (s *service) UpdateStock(ctx context.Context, priceID string, stock int) (*ItemView, error) {
	if priceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price id required")
	}
	if stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByPriceID(ctx, priceID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
		}
		if err := repo.SetStock(ctx, priceID, stock); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStorefront(ctx)
	return s.GetByPriceID(ctx, priceID)
}

// SyncFromStripe mirrors the active Stripe catalog into the inventory table.
// Names, prices, categories and images follow Stripe; stock is owned locally
// and never touched by the sync.
func (s *service) SyncFromStripe(ctx context.Context) (*SyncResult, error) {
	if s.catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stripe catalog client not configured")
	}

	products, err := s.catalog.ListActiveProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stripe products")
	}

	result := &SyncResult{}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, prod := range products {
			if prod == nil || prod.DefaultPrice == nil || prod.DefaultPrice.ID == "" {
				result.Skipped++
				continue
			}
			if err := s.syncProduct(ctx, repo, prod, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStorefront(ctx)
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"created": result.Created,
			"updated": result.Updated,
			"skipped": result.Skipped,
		}), "stripe catalog sync finished")
	}
	return result, nil
}

func (s *service) syncProduct(ctx context.Context, repo Repository, prod *stripe.Product, result *SyncResult) error {
	category := enums.ProductCategoryOrDefault(prod.Metadata["category"])
	var imageURL *string
	if len(prod.Images) > 0 {
		imageURL = &prod.Images[0]
	}
	var description *string
	if prod.Description != "" {
		description = &prod.Description
	}
	var playerType *string
	if pt := prod.Metadata["playerType"]; pt != "" {
		playerType = &pt
	}

	existing, err := repo.FindByPriceID(ctx, prod.DefaultPrice.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	if existing == nil {
		_, err := repo.Create(ctx, &models.InventoryItem{
			PriceID:     prod.DefaultPrice.ID,
			ProductID:   prod.ID,
			Name:        prod.Name,
			Category:    category,
			PriceCents:  prod.DefaultPrice.UnitAmount,
			Stock:       0,
			Description: description,
			ImageURL:    imageURL,
			PlayerType:  playerType,
			Active:      prod.Active,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory item")
		}
		result.Created++
		return nil
	}

	updates := map[string]any{
		"product_id":  prod.ID,
		"name":        prod.Name,
		"category":    category,
		"price_cents": prod.DefaultPrice.UnitAmount,
		"description": description,
		"image_url":   imageURL,
		"player_type": playerType,
		"active":      prod.Active,
	}
	if err := repo.Update(ctx, prod.DefaultPrice.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
	}
	result.Updated++
	return nil
}

func (s *service) cachedStorefront(ctx context.Context) *StorefrontView {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey("storefront", "catalog"))
	if err != nil {
		return nil
	}
	var view StorefrontView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return nil
	}
	return &view
}

func (s *service) cacheStorefront(ctx context.Context, view *StorefrontView) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey("storefront", "catalog"), string(payload), storefrontCacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "storefront cache write failed")
	}
}

func (s *service) invalidateStorefront(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, s.cache.CacheKey("storefront", "catalog"))
}

var _ storefrontCache = (*redis.Client)(nil)
