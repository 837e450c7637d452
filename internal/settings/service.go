package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/kritchanat/dormdesk/internal/billing"
)

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Save(ctx context.Context, st *Settings, updatedBy uuid.UUID) error {
	st.UpdatedBy = &updatedBy
	return s.repo.Save(ctx, st)
}

// BillingRates adapts the stored settings into the value the billing
// computation consumes. It satisfies billing.RatesSource.
func (s *Service) BillingRates(ctx context.Context) (billing.Rates, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		return billing.Rates{}, err
	}

	return billing.Rates{
		Water:       st.WaterRate,
		Electricity: st.ElectricityRate,
		Rent:        st.DepositRate,
	}, nil
}
