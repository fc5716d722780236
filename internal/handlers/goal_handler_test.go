// internal/handlers/goal_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_4_goal_wizard/internal/handlers"
	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"
)

// GoalService のモック
type mockGoalService struct {
	mock.Mock
}

func (m *mockGoalService) CreateYearGoal(ctx context.Context, userID uuid.UUID, req *model.CreateYearGoalRequest) (*model.Goal, error) {
	args := m.Called(ctx, userID, req)
	if goal, ok := args.Get(0).(*model.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGoalService) GenerateMonthGoals(ctx context.Context, userID, yearGoalID uuid.UUID) ([]*model.Goal, error) {
	args := m.Called(ctx, userID, yearGoalID)
	if goals, ok := args.Get(0).([]*model.Goal); ok {
		return goals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGoalService) GenerateWeekGoals(ctx context.Context, userID, monthGoalID uuid.UUID) ([]*model.Goal, error) {
	args := m.Called(ctx, userID, monthGoalID)
	if goals, ok := args.Get(0).([]*model.Goal); ok {
		return goals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGoalService) GetHierarchy(ctx context.Context, userID uuid.UUID) (*model.GoalHierarchyResponse, error) {
	args := m.Called(ctx, userID)
	if resp, ok := args.Get(0).(*model.GoalHierarchyResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGoalService) MarkCompleted(ctx context.Context, userID, goalID uuid.UUID) (*model.Goal, error) {
	args := m.Called(ctx, userID, goalID)
	if goal, ok := args.Get(0).(*model.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

// SuggestionService のスタブ
type stubSuggestionService struct {
	drafts []model.GoalDraft
}

func (s *stubSuggestionService) SuggestGoals(ctx context.Context, userID uuid.UUID, level model.GoalLevel, parent *model.Goal) []model.GoalDraft {
	return s.drafts
}

func newTestRouter(h *handlers.GoalHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.DevUserContextMiddleware)
	r.Route("/api/v1/goals", func(r chi.Router) {
		r.Get("/suggestions", h.GetYearSuggestions)
		r.Post("/year", h.PostYearGoal)
		r.Get("/hierarchy", h.GetHierarchy)
		r.Post("/{goal_id}/months", h.PostMonthGoals)
		r.Post("/{goal_id}/complete", h.PostComplete)
	})
	return r
}

func createRequest(t *testing.T, method, path string, body interface{}, userID *uuid.UUID) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	return req
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGoalHandler_PostYearGoal(t *testing.T) {
	userID := uuid.New()

	validReq := model.CreateYearGoalRequest{
		Title:        "会話とデートのスキルを磨く",
		Category:     model.CategorySocialSkills,
		AIGenerated:  true,
		AIConfidence: 0.85,
	}
	expectedGoal := &model.Goal{
		GoalID:   uuid.New(),
		UserID:   userID,
		Level:    model.LevelYear,
		Title:    validReq.Title,
		Category: validReq.Category,
		Status:   model.StatusActive,
	}

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           interface{}
		setupMock      func(svc *mockGoalService)
		expectedStatus int
	}{
		{
			name:   "正常系: 年目標の作成",
			userID: &userID,
			body:   validReq,
			setupMock: func(svc *mockGoalService) {
				svc.On("CreateYearGoal", mock.Anything, userID, &validReq).
					Return(expectedGoal, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: 認証ヘッダーなし",
			userID:         nil,
			body:           validReq,
			setupMock:      func(svc *mockGoalService) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "異常系: タイトルなしはバリデーションで弾かれる",
			userID:         &userID,
			body:           model.CreateYearGoalRequest{Category: model.CategoryProfile},
			setupMock:      func(svc *mockGoalService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: 不正なカテゴリ",
			userID:         &userID,
			body:           map[string]interface{}{"title": "目標", "category": "finance"},
			setupMock:      func(svc *mockGoalService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockGoalService)
			tt.setupMock(mockSvc)
			handler := handlers.NewGoalHandler(mockSvc, &stubSuggestionService{}, testLogger())
			router := newTestRouter(handler)

			req := createRequest(t, "POST", "/api/v1/goals/year", tt.body, tt.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus >= 400 {
				var errResp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
				assert.NotEmpty(t, errResp.Error.Code)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGoalHandler_GetYearSuggestions(t *testing.T) {
	userID := uuid.New()
	drafts := []model.GoalDraft{
		{Title: "候補1", Category: model.CategoryRelationship, AIConfidence: 0.9},
		{Title: "候補2", Category: model.CategoryConfidence, AIConfidence: 0.8},
	}

	handler := handlers.NewGoalHandler(new(mockGoalService), &stubSuggestionService{drafts: drafts}, testLogger())
	router := newTestRouter(handler)

	req := createRequest(t, "GET", "/api/v1/goals/suggestions", nil, &userID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got []model.GoalDraft
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "候補1", got[0].Title)
}

func TestGoalHandler_PostComplete(t *testing.T) {
	userID := uuid.New()
	goalID := uuid.New()

	tests := []struct {
		name           string
		setupMock      func(svc *mockGoalService)
		expectedStatus int
	}{
		{
			name: "正常系: 完了成功",
			setupMock: func(svc *mockGoalService) {
				svc.On("MarkCompleted", mock.Anything, userID, goalID).
					Return(&model.Goal{GoalID: goalID, Status: model.StatusCompleted}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "異常系: 既に完了済みはConflict",
			setupMock: func(svc *mockGoalService) {
				svc.On("MarkCompleted", mock.Anything, userID, goalID).
					Return(nil, model.NewAppError("ALREADY_COMPLETED", "この目標は既に完了しています。", "", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "異常系: 存在しない目標はNotFound",
			setupMock: func(svc *mockGoalService) {
				svc.On("MarkCompleted", mock.Anything, userID, goalID).
					Return(nil, model.NewAppError("GOAL_NOT_FOUND", "目標が見つかりません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockGoalService)
			tt.setupMock(mockSvc)
			handler := handlers.NewGoalHandler(mockSvc, &stubSuggestionService{}, testLogger())
			router := newTestRouter(handler)

			path := fmt.Sprintf("/api/v1/goals/%s/complete", goalID)
			req := createRequest(t, "POST", path, nil, &userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}
