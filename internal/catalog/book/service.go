// Copyright (c) 2026 Knihovna. All rights reserved.

package book

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

func (service *Service) ListBooks(ctx context.Context, opts query.Options) (*query.Result, error) {
	return service.repo.List(ctx, opts)
}

func (service *Service) GetBook(ctx context.Context, id primitive.ObjectID) (*Book, error) {
	return service.repo.GetByID(ctx, id)
}

func (service *Service) CreateBook(ctx context.Context, book *Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID.Hex()),
		slog.String("title", book.Title))
	return nil
}

func (service *Service) UpdateBook(ctx context.Context, id primitive.ObjectID, input *Book) error {
	if err := validateBook(input); err != nil {
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

	service.logger.Info("book_updated", slog.String("book_id", id.Hex()))
	return nil
}

func (service *Service) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id.Hex()))
	return nil
}

func validateBook(book *Book) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 500)
	validator.ISBN(FieldISBN, book.ISBN)

	if book.Pages != 0 {
		validator.Range(FieldPages, book.Pages, 1, 20000)
	}
	if book.Published != nil && book.Published.Year != 0 {
		validator.Range(FieldYear, book.Published.Year, 1400, 2100)
	}

	return validator.Err()
}
