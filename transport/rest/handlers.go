package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	appvalidator "github.com/rocketscienceinc/tictactoe-engine/internal/validator"
)

var errBadRequest = errors.New("bad request")

type gameUseCase interface {
	StartGame(ctx context.Context, mode entity.Mode, humanSymbol entity.Symbol) (*entity.Session, error)
	GetGame(ctx context.Context, id string) (*entity.Session, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error)
	RestartGame(ctx context.Context, id string) (*entity.Session, error)
	ConfigureGame(ctx context.Context, id string, mode entity.Mode, humanSymbol entity.Symbol) (*entity.Session, error)
	EndGame(ctx context.Context, id string) error
	Hint(ctx context.Context, id string) (int, error)
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func (that *handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := decodeRequest(r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	session, err := that.gameUseCase.StartGame(r.Context(), req.Mode, req.HumanSymbol)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameEnvelope(session))
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameEnvelope(session))
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeRequest(r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	session, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameEnvelope(session))
}

func (that *handlers) RestartGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.gameUseCase.RestartGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameEnvelope(session))
}

func (that *handlers) ConfigureGame(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := decodeRequest(r, &req); err != nil {
		that.writeError(w, r, err)
		return
	}

	session, err := that.gameUseCase.ConfigureGame(r.Context(), chi.URLParam(r, "id"), req.Mode, req.HumanSymbol)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameEnvelope(session))
}

func (that *handlers) Hint(w http.ResponseWriter, r *http.Request) {
	cell, err := that.gameUseCase.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, hintEnvelope{Cell: cell})
}

func (that *handlers) EndGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	if err := appvalidator.Get().Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := that.logger.With("method", "writeError")

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		that.writeJSON(w, status, errorEnvelope{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorEnvelope{Error: err.Error()})
}

func statusFromError(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.As(err, &validationErrs),
		errors.Is(err, apperror.ErrInvalidMode),
		errors.Is(err, apperror.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameOver),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrNoLegalMove):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
