package service

import (
	"context"

	"shopd/internal/auth"
	"shopd/internal/domain"
	"shopd/internal/repository"

	"go.uber.org/zap"
)

// SeedSummary reports what the demo seed created.
type SeedSummary struct {
	Company    string `json:"company"`
	Users      int    `json:"users"`
	Stores     int    `json:"stores"`
	Categories int    `json:"categories"`
	Products   int    `json:"products"`
	Customers  int    `json:"customers"`
	Orders     int    `json:"orders"`
}

// SeedService loads demo data. ApplyDemo is destructive: it wipes every
// table before inserting. ApplySupplementsStore is additive and requires
// the demo tenant to exist already.
type SeedService interface {
	ApplyDemo(ctx context.Context) (*SeedSummary, error)
	ApplySupplementsStore(ctx context.Context) (*SeedSummary, error)
}

type seedService struct {
	repo   repository.SeedRepository
	logger *zap.Logger
}

func NewSeedService(repo repository.SeedRepository, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, logger: logger}
}

func (s *seedService) ApplyDemo(ctx context.Context) (*SeedSummary, error) {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	fixture := demoFixture(hash)
	s.logger.Info("applying demo seed", zap.String("company", fixture.Company.Name))
	if err := s.repo.Apply(ctx, []repository.Fixture{fixture}); err != nil {
		s.logger.Error("demo seed failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("demo seed applied")
	return summarize(fixture), nil
}

func (s *seedService) ApplySupplementsStore(ctx context.Context) (*SeedSummary, error) {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	user := supplementsUser(hash)
	store := supplementsStore()
	s.logger.Info("applying supplements store seed", zap.String("store", store.Name))
	if err := s.repo.ApplyStore(ctx, demoCompanyName, user, store); err != nil {
		s.logger.Error("supplements store seed failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("supplements store seed applied")
	return summarize(repository.Fixture{
		Company: domain.Company{Name: demoCompanyName},
		Users:   []repository.FixtureUser{user},
		Stores:  []repository.FixtureStore{store},
	}), nil
}

func summarize(f repository.Fixture) *SeedSummary {
	sum := &SeedSummary{
		Company: f.Company.Name,
		Users:   len(f.Users),
		Stores:  len(f.Stores),
	}
	for _, st := range f.Stores {
		sum.Categories += len(st.Categories)
		sum.Products += len(st.Products)
		sum.Customers += len(st.Customers)
		sum.Orders += len(st.Orders)
	}
	return sum
}
