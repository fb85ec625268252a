// Package services holds the helmet use cases. Each one wraps a single
// repository call and reports an Outcome; nothing here knows about HTTP.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/helmet-store/app/models"
	"github.com/shashiranjanraj/helmet-store/app/repositories"
	"github.com/shashiranjanraj/helmet-store/pkg/bind"
	"github.com/shashiranjanraj/helmet-store/pkg/logger"
	"github.com/shashiranjanraj/helmet-store/pkg/validate"
)

// Use case tags, as logged under "use_case".
const (
	UseCaseListHelmets  = "list_helmets"
	UseCaseListTypes    = "list_helmet_types"
	UseCaseAddHelmet    = "add_helmet"
	UseCaseEditHelmet   = "edit_helmet"
	UseCaseDeleteHelmet = "delete_helmet"
)

// AddHelmetInput is the body of POST /add_helmet.
type AddHelmetInput struct {
	Type  *int64           `json:"type"  validate:"required,integer,gte=1"`
	Name  *string          `json:"name"  validate:"required"`
	Price *decimal.Decimal `json:"price" validate:"required,numeric,gte=0"`
	Stock *int64           `json:"stock" validate:"required,integer,gte=0"`
}

// EditHelmetInput is the body of PUT /edit_helmet/{id}.
type EditHelmetInput struct {
	Price *decimal.Decimal `json:"price" validate:"required,numeric,gte=0"`
	Stock *int64           `json:"stock" validate:"required,integer,gte=0"`
}

type HelmetService struct {
	repo    repositories.HelmetRepository
	backend string
}

// NewHelmetService binds the use cases to repo. backend only labels logs.
func NewHelmetService(repo repositories.HelmetRepository, backend string) *HelmetService {
	return &HelmetService{repo: repo, backend: backend}
}

func (s *HelmetService) List(ctx context.Context) Outcome {
	helmets, err := s.repo.ListHelmets(ctx)
	if err != nil {
		return s.fault(ctx, UseCaseListHelmets, err)
	}
	if len(helmets) == 0 {
		return s.notFound(ctx, UseCaseListHelmets, "Helmet not found")
	}

	list := make([]models.HelmetListing, len(helmets))
	for i, h := range helmets {
		list[i] = h.Listing()
	}
	return Success(newListing(list))
}

func (s *HelmetService) ListTypes(ctx context.Context) Outcome {
	types, err := s.repo.ListTypes(ctx)
	if err != nil {
		return s.fault(ctx, UseCaseListTypes, err)
	}
	if len(types) == 0 {
		return s.notFound(ctx, UseCaseListTypes, "Type Helmet not found")
	}
	return Success(newListing(types))
}

func (s *HelmetService) Add(ctx context.Context, in AddHelmetInput) Outcome {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return s.invalid(ctx, UseCaseAddHelmet, validate.Summary(errs), errs)
	}

	typeID, name, price, stock := uint(*in.Type), *in.Name, *in.Price, int(*in.Stock)
	if err := s.repo.AddHelmet(ctx, typeID, name, price, stock); err != nil {
		return s.fault(ctx, UseCaseAddHelmet, err)
	}
	return Success(fmt.Sprintf("Added '%s' as '%s' to helmet with stock %d", name, price.String(), stock))
}

func (s *HelmetService) Edit(ctx context.Context, id uint, in EditHelmetInput) Outcome {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return s.invalid(ctx, UseCaseEditHelmet, validate.Summary(errs), errs)
	}

	price, stock := *in.Price, int(*in.Stock)
	ok, err := s.repo.EditHelmet(ctx, id, price, stock)
	if err != nil {
		return s.fault(ctx, UseCaseEditHelmet, err)
	}
	if !ok {
		return s.notFound(ctx, UseCaseEditHelmet, fmt.Sprintf("Helmet with id %d not found", id))
	}
	return Success(fmt.Sprintf("Helmet with id %d has been updated price to %s and stock to %d", id, price.String(), stock))
}

func (s *HelmetService) Delete(ctx context.Context, id uint) Outcome {
	ok, err := s.repo.DeleteHelmet(ctx, id)
	if err != nil {
		return s.fault(ctx, UseCaseDeleteHelmet, err)
	}
	if !ok {
		return s.notFound(ctx, UseCaseDeleteHelmet, fmt.Sprintf("Helmet with id %d not found", id))
	}
	return Success(fmt.Sprintf("Delete id %d successfully", id))
}

// Reject reports input that never reached a use case: an unreadable body
// or a malformed path id.
func (s *HelmetService) Reject(ctx context.Context, useCase string, err error) Outcome {
	var fields map[string]string
	var de *bind.DecodeError
	if errors.As(err, &de) && de.Field != "" {
		fields = map[string]string{de.Field: de.Msg}
	}
	return s.invalid(ctx, useCase, err.Error(), fields)
}

func (s *HelmetService) invalid(ctx context.Context, useCase, message string, fields map[string]string) Outcome {
	logger.WithCtx(ctx).Warn("validation failed",
		"use_case", useCase, "backend", s.backend, "message", message)
	return Invalid(message, fields)
}

func (s *HelmetService) notFound(ctx context.Context, useCase, message string) Outcome {
	logger.WithCtx(ctx).Info("not found",
		"use_case", useCase, "backend", s.backend, "message", message)
	return NotFound(message)
}

func (s *HelmetService) fault(ctx context.Context, useCase string, err error) Outcome {
	logger.WithCtx(ctx).Error("storage fault",
		"use_case", useCase, "backend", s.backend, "error", err)
	return Fault(err)
}
