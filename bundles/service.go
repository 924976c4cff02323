package bundles

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
)

// DefaultCheapness applies the full sustainable discount when evaluating
// generated bundles.
const DefaultCheapness = 1.0

// topBundlesForAverage is how many top-ranked bundles feed the fleet-wide
// daily profit estimate.
const topBundlesForAverage = 10

// Service runs generators, evaluates their output and ranks the results.
type Service struct {
	deps      Deps
	evaluator *Evaluator
	cheapness float64
}

// NewService creates the bundle service.
func NewService(deps Deps, evaluator *Evaluator) *Service {
	return &Service{deps: deps, evaluator: evaluator, cheapness: DefaultCheapness}
}

// GetBundles runs one strategy and returns its evaluated bundles ranked by
// added profit. Personalized strategies without a user ID produce nothing.
func (s *Service) GetBundles(ctx context.Context, req base.Request) ([]models.EvaluatedBundle, error) {
	generator, err := ForType(s.deps, req.Type)
	if err != nil {
		return nil, err
	}
	if personalized(req.Type) && req.UserID == "" {
		return nil, nil
	}

	candidates, err := generator.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s generation failed: %w", req.Type, err)
	}

	evaluated, err := s.evaluateAll(candidates)
	if err != nil {
		return nil, err
	}
	return Rank(evaluated), nil
}

// GetAllBundles runs every strategy, ranks the concatenated output and
// estimates the average added profit per day: the mean profit of the top
// ranked bundles scaled by the average number of distinct orders per day.
func (s *Service) GetAllBundles(ctx context.Context, userID, priority string) ([]models.EvaluatedBundle, float64, error) {
	var candidates []models.Bundle
	for _, generator := range All(s.deps) {
		if personalized(generator.Name()) && userID == "" {
			continue
		}
		req := base.Request{Type: generator.Name(), UserID: userID, Priority: priority}
		generated, err := generator.Generate(ctx, req)
		if err != nil {
			return nil, 0, fmt.Errorf("%s generation failed: %w", generator.Name(), err)
		}
		candidates = append(candidates, generated...)
	}

	evaluated, err := s.evaluateAll(candidates)
	if err != nil {
		return nil, 0, err
	}
	ranked := Rank(evaluated)

	top := ranked
	if len(top) > topBundlesForAverage {
		top = top[:topBundlesForAverage]
	}
	if len(top) == 0 {
		return ranked, 0, nil
	}
	sum := 0.0
	for _, b := range top {
		sum += b.AddedProfit
	}
	avgPerDay := sum / float64(len(top)) * s.deps.Snapshot.AverageDistinctOrdersPerDay()
	return ranked, avgPerDay, nil
}

func (s *Service) evaluateAll(candidates []models.Bundle) ([]models.EvaluatedBundle, error) {
	evaluated := make([]models.EvaluatedBundle, 0, len(candidates))
	for _, b := range candidates {
		eb, err := s.evaluator.Evaluate(b, s.cheapness)
		if err != nil {
			return nil, err
		}
		evaluated = append(evaluated, eb)
	}
	return evaluated, nil
}
