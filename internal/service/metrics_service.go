package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"dailydiet/internal/cache"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

const metricsCacheTTL = 5 * time.Minute

// Metrics summarises a session's diet adherence.
type Metrics struct {
	TotalMeals         int             `json:"totalMeals"`
	MealsOnDiet        int             `json:"mealsOnDiet"`
	MealsOffDiet       int             `json:"mealsOffDiet"`
	BestSequenceOnDiet int             `json:"bestSequenceOnDiet"`
	OnDietPercentage   decimal.Decimal `json:"onDietPercentage"`
}

// ComputeMetrics derives Metrics from meals. Streaks follow chronological
// order of DateTime, not the order of the slice; meals is not modified.
func ComputeMetrics(meals []model.Meal) Metrics {
	ordered := slices.Clone(meals)
	slices.SortStableFunc(ordered, func(a, b model.Meal) int {
		return a.DateTime.Compare(b.DateTime)
	})

	var m Metrics
	streak := 0
	for _, meal := range ordered {
		m.TotalMeals++
		if !meal.IsOnDiet {
			m.MealsOffDiet++
			streak = 0
			continue
		}
		m.MealsOnDiet++
		streak++
		if streak > m.BestSequenceOnDiet {
			m.BestSequenceOnDiet = streak
		}
	}

	m.OnDietPercentage = decimal.Zero
	if m.TotalMeals > 0 {
		m.OnDietPercentage = decimal.NewFromInt(int64(m.MealsOnDiet)).
			Div(decimal.NewFromInt(int64(m.TotalMeals))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return m
}

// MetricsService computes adherence metrics for a session.
type MetricsService interface {
	Compute(ctx context.Context, sessionID string) (*Metrics, error)
}

type metricsService struct {
	repo  repository.MealRepository
	cache *cache.Client
}

// NewMetricsService creates a metrics service. cache may be nil.
func NewMetricsService(repo repository.MealRepository, cache *cache.Client) MetricsService {
	return &metricsService{repo: repo, cache: cache}
}

// Compute returns the session's metrics, served from cache while no meal of
// the session has changed. Snapshots are keyed by the session's generation,
// read before the meals are loaded, so a snapshot computed while a mutation
// bumps the generation is stored under a key no later read uses.
func (s *metricsService) Compute(ctx context.Context, sessionID string) (*Metrics, error) {
	gen, cacheable := s.cache.Counter(ctx, metricsGenerationKey(sessionID))
	key := metricsCacheKey(sessionID, gen)

	var cached Metrics
	if cacheable && s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	meals, err := s.repo.ListBySessionChronological(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	metrics := ComputeMetrics(meals)
	if cacheable {
		s.cache.SetJSON(ctx, key, metrics, metricsCacheTTL)
	}
	return &metrics, nil
}

func metricsCacheKey(sessionID string, gen int64) string {
	return fmt.Sprintf("metrics:%s:%d", sessionID, gen)
}

func metricsGenerationKey(sessionID string) string {
	return fmt.Sprintf("metrics:%s:gen", sessionID)
}
