// Copyright (c) 2026 Knihovna. All rights reserved.

package quote

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

func (service *Service) ListQuotes(ctx context.Context, opts query.Options) (*query.Result, error) {
	return service.repo.List(ctx, opts)
}

func (service *Service) GetQuote(ctx context.Context, id primitive.ObjectID) (*Quote, error) {
	return service.repo.GetByID(ctx, id)
}

func (service *Service) RandomQuote(ctx context.Context) (*Quote, error) {
	return service.repo.Random(ctx)
}

func (service *Service) CreateQuote(ctx context.Context, q *Quote) error {
	if err := validateQuote(q); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, q); err != nil {
		return err
	}

	service.logger.Info("quote_created", slog.String("quote_id", q.ID.Hex()))
	return nil
}

func (service *Service) UpdateQuote(ctx context.Context, id primitive.ObjectID, input *Quote) error {
	if err := validateQuote(input); err != nil {
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

	service.logger.Info("quote_updated", slog.String("quote_id", id.Hex()))
	return nil
}

func (service *Service) DeleteQuote(ctx context.Context, id primitive.ObjectID) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("quote_deleted", slog.String("quote_id", id.Hex()))
	return nil
}

func validateQuote(q *Quote) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, q.Text).MaxLen(FieldText, q.Text, 5000)
	return validator.Err()
}
