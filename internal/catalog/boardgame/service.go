// Copyright (c) 2026 Knihovna. All rights reserved.

package boardgame

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/platform/apperr"
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

func (service *Service) ListBoardGames(ctx context.Context, opts query.Options, filter Filter) (*query.Result, error) {
	return service.repo.List(ctx, opts, filter)
}

func (service *Service) GetBoardGame(ctx context.Context, id primitive.ObjectID) (*BoardGame, error) {
	return service.repo.GetByID(ctx, id)
}

func (service *Service) CreateBoardGame(ctx context.Context, game *BoardGame) error {
	if err := service.validateBoardGame(ctx, game); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, game); err != nil {
		return err
	}

	service.logger.Info("board_game_created",
		slog.String("board_game_id", game.ID.Hex()),
		slog.String("title", game.Title))
	return nil
}

func (service *Service) UpdateBoardGame(ctx context.Context, id primitive.ObjectID, input *BoardGame) error {
	if err := service.validateBoardGame(ctx, input); err != nil {
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

	service.logger.Info("board_game_updated", slog.String("board_game_id", id.Hex()))
	return nil
}

func (service *Service) DeleteBoardGame(ctx context.Context, id primitive.ObjectID) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("board_game_deleted", slog.String("board_game_id", id.Hex()))
	return nil
}

// validateBoardGame checks field constraints and, for expansions, that the
// parent is a live base game.
func (service *Service) validateBoardGame(ctx context.Context, game *BoardGame) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, game.Title).MaxLen(FieldTitle, game.Title, 500)

	if game.Players != nil {
		validator.Custom(FieldPlayers,
			game.Players.Min < 0 || game.Players.Max < 0,
			"Player counts must not be negative")
		validator.Custom(FieldPlayers,
			game.Players.Max != 0 && game.Players.Min > game.Players.Max,
			"Minimum players must not exceed maximum")
	}
	if game.Published != nil && game.Published.Year != 0 {
		validator.Range(FieldYear, game.Published.Year, 1800, 2100)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if game.Parent != nil {
		parent, err := service.repo.GetByID(ctx, *game.Parent)
		if err != nil {
			return err
		}
		if parent.Parent != nil {
			return apperr.ValidationError("Validation failed",
				apperr.FieldError{Field: FieldParent, Message: "Expansions cannot nest"})
		}
	}

	return nil
}
