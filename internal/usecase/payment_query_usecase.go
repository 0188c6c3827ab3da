package usecase

import (
	"context"
	"errors"
	"strings"

	"stackfood_payments/internal/domain/entities"
	"stackfood_payments/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// IPaymentQueryUseCase covers the read-only lookups of the synchronous API.

type IPaymentQueryUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Payment, error)
}

type PaymentQueryUseCase struct {
	repo interfaces.IPaymentRepository
}

var _ IPaymentQueryUseCase = (*PaymentQueryUseCase)(nil)

func NewPaymentQueryUseCase(repo interfaces.IPaymentRepository) *PaymentQueryUseCase {
	return &PaymentQueryUseCase{repo: repo}
}

func (u *PaymentQueryUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentQueryUseCase) GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}

	p, err := u.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentQueryUseCase) ListByStatus(ctx context.Context, status string) ([]entities.Payment, error) {
	parsed, ok := entities.ParsePaymentStatus(strings.TrimSpace(status))
	if !ok {
		return nil, ErrInvalidPaymentStatus
	}
	return u.repo.ListByStatus(ctx, parsed)
}
