// Copyright (c) 2026 Knihovna. All rights reserved.

package lp

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListLPs(ctx context.Context, opts query.Options) (*query.Result, error) {
	return service.repo.List(ctx, opts)
}

func (service *Service) GetLP(ctx context.Context, id primitive.ObjectID) (*LP, error) {
	return service.repo.GetByID(ctx, id)
}

func (service *Service) CreateLP(ctx context.Context, lp *LP) error {
	if err := validateLP(lp); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, lp); err != nil {
		return err
	}

	service.logger.Info("lp_created",
		slog.String("lp_id", lp.ID.Hex()),
		slog.String("title", lp.Title))
	return nil
}

func (service *Service) UpdateLP(ctx context.Context, id primitive.ObjectID, input *LP) error {
	if err := validateLP(input); err != nil {
		return err
	}

	prev, err := service.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	merged := Apply(*prev, *input)
	if err := service.repo.Update(ctx, &merged); err != nil {
		return err
	}
	*input = merged

	service.logger.Info("lp_updated", slog.String("lp_id", id.Hex()))
	return nil
}

func (service *Service) DeleteLP(ctx context.Context, id primitive.ObjectID) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("lp_deleted", slog.String("lp_id", id.Hex()))
	return nil
}

func validateLP(lp *LP) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, lp.Title).MaxLen(FieldTitle, lp.Title, 500)

	if lp.Speed != 0 {
		validSpeed := lp.Speed == 16 || lp.Speed == 33 || lp.Speed == 45 || lp.Speed == 78
		validator.Custom(FieldSpeed, !validSpeed, "Must be one of: 16, 33, 45, 78")
	}
	if lp.CountLP != 0 {
		validator.Range(FieldCountLP, lp.CountLP, 1, 100)
	}
	if lp.Published != nil && lp.Published.Year != 0 {
		validator.Range(FieldYear, lp.Published.Year, 1900, 2100)
	}

	return validator.Err()
}
