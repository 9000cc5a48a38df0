// Package merchant manages merchant profiles and their fee configuration.
// Creating a merchant provisions its wallet in the same transaction.
package merchant

import (
	"context"
	"errors"
	"fmt"

	"paycore/internal/models"
	"paycore/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrInvalidFeeType   = errors.New("invalid fee type")
	ErrInvalidBrandName = errors.New("brand name is required")
)

// CreateInput carries the fields a new merchant profile needs. Fee fields
// are optional; the defaults are 5 (percentage).
type CreateInput struct {
	BrandName      string
	WhatsappNumber string
	DomainName     string
	FeesType       string
	DepositFees    *decimal.Decimal
	PayoutFees     *decimal.Decimal
	WithdrawFees   *decimal.Decimal
}

// FeesInput updates the merchant's fee policy.
type FeesInput struct {
	FeesType     string
	DepositFees  *decimal.Decimal
	PayoutFees   *decimal.Decimal
	WithdrawFees *decimal.Decimal
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.Merchant, error)
	Get(ctx context.Context, id uint) (*models.Merchant, error)
	GetByCode(ctx context.Context, code string) (*models.Merchant, error)
	UpdateFees(ctx context.Context, id uint, in FeesInput) (*models.Merchant, error)
}

type service struct {
	repo repositories.MerchantRepository
}

func NewService(repo repositories.MerchantRepository) Service {
	if repo == nil {
		panic("merchant repository is required")
	}
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*models.Merchant, error) {
	if in.BrandName == "" {
		return nil, ErrInvalidBrandName
	}
	feesType, err := normalizeFeeType(in.FeesType, models.FeeTypePercentage)
	if err != nil {
		return nil, err
	}

	defaultRate := decimal.NewFromInt(5)
	m := &models.Merchant{
		BrandName:      in.BrandName,
		WhatsappNumber: in.WhatsappNumber,
		DomainName:     in.DomainName,
		Status:         models.MerchantStatusActive,
		FeesType:       feesType,
		DepositFees:    rateOrDefault(in.DepositFees, defaultRate),
		PayoutFees:     rateOrDefault(in.PayoutFees, defaultRate),
		WithdrawFees:   rateOrDefault(in.WithdrawFees, defaultRate),
		IsActive:       true,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("failed to create merchant: %w", err)
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Merchant, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrMerchantNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*models.Merchant, error) {
	m, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrMerchantNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *service) UpdateFees(ctx context.Context, id uint, in FeesInput) (*models.Merchant, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FeesType != "" {
		feesType, err := normalizeFeeType(in.FeesType, m.FeesType)
		if err != nil {
			return nil, err
		}
		m.FeesType = feesType
	}
	if in.DepositFees != nil {
		m.DepositFees = *in.DepositFees
	}
	if in.PayoutFees != nil {
		m.PayoutFees = *in.PayoutFees
	}
	if in.WithdrawFees != nil {
		m.WithdrawFees = *in.WithdrawFees
	}
	if err := s.repo.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update merchant fees: %w", err)
	}
	return m, nil
}

func normalizeFeeType(t, fallback string) (string, error) {
	switch t {
	case "":
		return fallback, nil
	case models.FeeTypeFlat, "Flat":
		return models.FeeTypeFlat, nil
	case models.FeeTypePercentage, "Percentage", "parcentage", "Parcentage":
		return models.FeeTypePercentage, nil
	}
	return "", ErrInvalidFeeType
}

func rateOrDefault(rate *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return def
	}
	return *rate
}
