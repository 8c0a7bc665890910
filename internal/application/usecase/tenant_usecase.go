package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/domain"
	"github.com/kosman/kosman-api/internal/domain/entity"
	"github.com/kosman/kosman-api/internal/domain/repository"
	"github.com/kosman/kosman-api/pkg/clock"
)

// TenantUseCase CRUD for tenants. Deletion is blocked while the tenant holds
// an active rental.
type TenantUseCase struct {
	tenants repository.TenantRepository
	rentals repository.RentalRepository
	clk     clock.Clock
}

// NewTenantUseCase builds the use case.
func NewTenantUseCase(tenants repository.TenantRepository, rentals repository.RentalRepository, clk clock.Clock) *TenantUseCase {
	return &TenantUseCase{tenants: tenants, rentals: rentals, clk: clk}
}

// Create registers a tenant.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if in.Name == "" || in.Phone == "" || in.IDNumber == "" {
		return nil, domain.ErrValidation
	}
	now := uc.clk.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		IDNumber:  in.IDNumber,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// GetByID fetches one tenant.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// List returns all tenants.
func (uc *TenantUseCase) List(ctx context.Context) ([]*dto.TenantResponse, error) {
	tenants, err := uc.tenants.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantResponse(t))
	}
	return out, nil
}

// Update applies a partial update; nil fields stay unchanged.
func (uc *TenantUseCase) Update(ctx context.Context, id string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		tenant.Name = *in.Name
	}
	if in.Phone != nil {
		tenant.Phone = *in.Phone
	}
	if in.Email != nil {
		tenant.Email = *in.Email
	}
	if in.IDNumber != nil {
		tenant.IDNumber = *in.IDNumber
	}
	if in.Address != nil {
		tenant.Address = *in.Address
	}
	tenant.UpdatedAt = uc.clk.Now()
	if err := uc.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// Delete removes a tenant. Blocked while an active rental references them.
func (uc *TenantUseCase) Delete(ctx context.Context, id string) error {
	tenant, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.ErrNotFound
	}
	active, err := uc.rentals.GetActiveByTenant(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return domain.ErrConflict
	}
	return uc.tenants.Delete(ctx, id)
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Phone:     t.Phone,
		Email:     t.Email,
		IDNumber:  t.IDNumber,
		Address:   t.Address,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
