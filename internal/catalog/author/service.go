// Copyright (c) 2026 Knihovna. All rights reserved.

package author

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

func (service *Service) ListAuthors(ctx context.Context, opts query.Options) (*query.Result, error) {
	return service.repo.List(ctx, opts)
}

func (service *Service) GetAuthor(ctx context.Context, id primitive.ObjectID) (*Author, error) {
	return service.repo.GetByID(ctx, id)
}

func (service *Service) CreateAuthor(ctx context.Context, author *Author) error {
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, author); err != nil {
		return err
	}

	service.logger.Info("author_created",
		slog.String("author_id", author.ID.Hex()),
		slog.String("name", author.FullName()))
	return nil
}

func (service *Service) UpdateAuthor(ctx context.Context, id primitive.ObjectID, input *Author) error {
	if err := validateAuthor(input); err != nil {
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

	service.logger.Info("author_updated", slog.String("author_id", id.Hex()))
	return nil
}

// DeleteAuthor soft-deletes the author. Books keep their references: a
// deleted author stays resolvable through $lookup, they just disappear from
// author list views.
func (service *Service) DeleteAuthor(ctx context.Context, id primitive.ObjectID) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.String("author_id", id.Hex()))
	return nil
}

func validateAuthor(author *Author) error {
	validator := &validate.Validator{}

	validator.Required(FieldLastName, author.LastName).MaxLen(FieldLastName, author.LastName, 200)
	validator.MaxLen(FieldFirstName, author.FirstName, 200)

	if author.BirthYear != 0 {
		validator.Range(FieldBirthYear, author.BirthYear, 0, 2100)
	}
	if author.DeathYear != 0 {
		validator.Range(FieldDeathYear, author.DeathYear, 0, 2100)
	}

	return validator.Err()
}
