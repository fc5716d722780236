// internal/handlers/goal_handler.go
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

type GoalHandler struct {
	goalService service.GoalService
	suggester   service.SuggestionService
	logger      *slog.Logger
}

func NewGoalHandler(goalService service.GoalService, suggester service.SuggestionService, logger *slog.Logger) *GoalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoalHandler{
		goalService: goalService,
		suggester:   suggester,
		logger:      logger,
	}
}

// GetYearSuggestions は年間目標のドラフト一覧を返すハンドラ。
// 保存は行わず、提案のみ。AIが使えない場合も定型テンプレートで必ず200を返す。
func (h *GoalHandler) GetYearSuggestions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetYearSuggestions"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	drafts := h.suggester.SuggestGoals(r.Context(), userID, model.LevelYear, nil)

	logger.Info("Year goal suggestions returned", slog.Int("count", len(drafts)))
	webutil.RespondWithJSON(w, http.StatusOK, drafts, logger)
}

// PostYearGoal は選択・編集された年間目標を保存するハンドラ
func (h *GoalHandler) PostYearGoal(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostYearGoal"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CreateYearGoalRequest
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

			// 最初のエラーを代表としてクライアントに返す
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

	goal, err := h.goalService.CreateYearGoal(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating year goal in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Year goal created successfully", slog.String("goal_id", goal.GoalID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, goal, logger)
}

// PostMonthGoals は年間目標の直下に月間目標を生成するハンドラ。
// 生成済みの場合もエラーにはせず、既存の子目標を200で返す。
func (h *GoalHandler) PostMonthGoals(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostMonthGoals"))

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

	goals, err := h.goalService.GenerateMonthGoals(r.Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Parent year goal not found", slog.Any("error", err))
		} else {
			logger.Error("Error generating month goals in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Month goals generated successfully", slog.Int("count", len(goals)))
	webutil.RespondWithJSON(w, http.StatusCreated, goals, logger)
}

// PostWeekGoals は月間目標の直下に週間目標を生成するハンドラ
func (h *GoalHandler) PostWeekGoals(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWeekGoals"))

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

	goals, err := h.goalService.GenerateWeekGoals(r.Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Parent month goal not found", slog.Any("error", err))
		} else {
			logger.Error("Error generating week goals in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Week goals generated successfully", slog.Int("count", len(goals)))
	webutil.RespondWithJSON(w, http.StatusCreated, goals, logger)
}

// GetHierarchy はユーザーの目標階層全体を取得するハンドラ
func (h *GoalHandler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHierarchy"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	hierarchy, err := h.goalService.GetHierarchy(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting goal hierarchy in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal hierarchy retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, hierarchy, logger)
}

// PostComplete は目標を手動で完了にするハンドラ
func (h *GoalHandler) PostComplete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostComplete"))

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

	goal, err := h.goalService.MarkCompleted(r.Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) {
			logger.Info("Goal completion rejected", slog.Any("error", err))
		} else {
			logger.Error("Error completing goal in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Goal completed successfully")
	webutil.RespondWithJSON(w, http.StatusOK, goal, logger)
}
