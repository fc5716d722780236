// internal/handlers/progress_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"
	"go_4_goal_wizard/internal/service"
	"go_4_goal_wizard/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// PutProgress は目標の進捗値を記録するハンドラ。
// 目標値に到達した場合はレスポンスの completed が true になる。
func (h *ProgressHandler) PutProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	goalIDStr := chi.URLParam(r, "goal_id")
	goalID, err := uuid.Parse(goalIDStr)
	if err != nil {
		logger.Warn("Invalid goal ID format in URL", slog.String("goal_id_str", goalIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "goal_idの形式が正しくありません。", "goal_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("goal_id", goalID.String()))

	var req model.RecordProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()), slog.Any("request", req))

			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)

			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	resp, err := h.service.RecordProgress(r.Context(), userID, goalID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Goal not found for progress update", slog.Any("error", err))
		} else {
			logger.Error("Error recording progress in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress recorded successfully", slog.Bool("completed", resp.Completed))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetProgress は目標の進捗履歴(新しい順)を取得するハンドラ
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	goalIDStr := chi.URLParam(r, "goal_id")
	goalID, err := uuid.Parse(goalIDStr)
	if err != nil {
		logger.Warn("Invalid goal ID format in URL", slog.String("goal_id_str", goalIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "goal_idの形式が正しくありません。", "goal_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("goal_id", goalID.String()))

	entries, err := h.service.ListProgress(r.Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Goal not found for progress listing", slog.Any("error", err))
		} else {
			logger.Error("Error listing progress in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress entries listed successfully", slog.Int("count", len(entries)))
	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}

// GetStatistics はユーザーの目標統計を取得するハンドラ
func (h *ProgressHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStatistics"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	stats, err := h.service.GetStatistics(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting statistics in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Statistics retrieved successfully", slog.Int64("total_goals", stats.TotalGoals))
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
