package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/luxhub/project-service/internal/catalog"
	"github.com/luxhub/project-service/internal/catalog/dto"
	"github.com/luxhub/project-service/internal/ledger"
	"github.com/luxhub/project-service/internal/model"
	"github.com/luxhub/project-service/internal/pkg/cache"
	"github.com/luxhub/project-service/internal/pkg/logger"
	"github.com/luxhub/project-service/internal/pkg/search"
	"go.uber.org/zap"
)

const productsIndex = "products"

type catalogUseCase struct {
	repo     catalog.Repository
	cache    *cache.RedisClient
	es       *search.Client
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, cache *cache.RedisClient, es *search.Client, cacheTTL time.Duration, log logger.ZapLogger) catalog.UseCase {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &catalogUseCase{
		repo:     repo,
		cache:    cache,
		es:       es,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, itemNumber string) (*model.Product, error) {
	key := productCacheKey(itemNumber)

	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, key).Result(); err == nil {
			var p model.Product
			if err := json.Unmarshal([]byte(val), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := uc.repo.FindByItemNumber(ctx, itemNumber)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	if uc.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			uc.cache.Client.Set(ctx, key, data, uc.cacheTTL)
		}
	}
	return p, nil
}

func (uc *catalogUseCase) Resolve(ctx context.Context, itemNumber string) (int64, error) {
	p, err := uc.GetProduct(ctx, itemNumber)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("%w: %s", ledger.ErrProductNotFound, itemNumber)
	}
	return p.ID, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{
					"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
					"fields": []string{"name^3", "item_number", "short_description"},
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		res, err := uc.es.Search(ctx, productsIndex, q)
		if err == nil {
			var products []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					products = append(products, p)
				}
			}
			return products, res.Hits.Total.Value, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	return uc.repo.FindAll(ctx, filters)
}

func productCacheKey(itemNumber string) string {
	return "catalog:product:" + itemNumber
}
