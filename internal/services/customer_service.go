package services

import (
	"context"
	"strings"

	"travel-backend/internal/cache"
	"travel-backend/internal/models"
	"travel-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type CustomerService struct {
	Repo  *repositories.CustomerRepository
	audit AuditWriter
}

func NewCustomerService(repo *repositories.CustomerRepository, audit AuditWriter) *CustomerService {
	return &CustomerService{Repo: repo, audit: audit}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidField("name", "name is required")
	}
	if len(strings.TrimSpace(req.Phone)) < 10 {
		return nil, invalidField("phone", "phone must be at least 10 characters")
	}

	customer := &models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		Notes:   strings.TrimSpace(req.Notes),
	}

	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	cache.InvalidateCustomerCaches(ctx)
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	customer, err := s.Repo.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return customer, err
}

func (s *CustomerService) SearchByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	if phone == "" {
		return nil, invalidField("phone", "phone number is required")
	}
	customer, err := s.Repo.GetByPhone(ctx, phone)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return customer, err
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	return s.Repo.List(ctx)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidField("name", "name is required")
	}
	if len(strings.TrimSpace(req.Phone)) < 10 {
		return nil, invalidField("phone", "phone must be at least 10 characters")
	}

	customer := &models.Customer{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
		Notes:   strings.TrimSpace(req.Notes),
	}

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	cache.InvalidateCustomerCaches(ctx)
	return s.Repo.Get(ctx, id)
}

// DeleteCustomer removes a customer only when no live bookings reference
// them. Soft-deleted bookings do not block the delete.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int, actor string) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	count, err := s.Repo.CountBookings(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCustomerHasBookings
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, actor, "customer.delete", "customer", id, "")
	cache.InvalidateCustomerCaches(ctx)
	return nil
}
