package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go_4_goal_wizard/internal/config"
	"go_4_goal_wizard/internal/middleware"
	"go_4_goal_wizard/internal/model"
	"go_4_goal_wizard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 1回の提案で返すドラフト数。レベルごとの契約上の固定値であり、設定では変更できない。
const (
	yearDraftCount  = 5
	monthDraftCount = 3
	weekDraftCount  = 4
)

// coachPersona はAIに与えるsystemメッセージ
const coachPersona = "あなたは現実的で前向きな目標設定を手伝う、経験豊富なデートコーチです。本人の状況に合った、達成可能で測定できる小さなステップを提案してください。"

// SuggestionService は目標ドラフトの生成を担います。
// 戻り値は常に有効なドラフト集合で、エラーを返すことはありません。
// AIの呼び出し・パース・検証のいずれかに失敗した場合は、
// カテゴリをキーとする決定的なフォールバック表に退化します(GenerationDegraded)。
type SuggestionService interface {
	SuggestGoals(ctx context.Context, userID uuid.UUID, level model.GoalLevel, parent *model.Goal) []model.GoalDraft
}

type suggestionService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
	chat        ChatClient
	cfg         *config.Config
}

func NewSuggestionService(db *gorm.DB, profileRepo repository.ProfileRepository, chat ChatClient, cfg *config.Config) SuggestionService {
	return &suggestionService{
		db:          db,
		profileRepo: profileRepo,
		chat:        chat,
		cfg:         cfg,
	}
}

func (s *suggestionService) SuggestGoals(ctx context.Context, userID uuid.UUID, level model.GoalLevel, parent *model.Goal) []model.GoalDraft {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "level", string(level))

	profile, err := s.profileRepo.FindByUserID(ctx, s.db, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Warn("Suggestion generation degraded: failed to load profile context", "error", err)
		return fallbackDrafts(level, parent)
	}

	// プロフィール未登録での年目標提案は、AIを呼ばず定型テンプレートを返す
	if profile == nil && level == model.LevelYear {
		logger.Info("No profile context, returning stock year goal templates")
		return fallbackDrafts(level, parent)
	}

	prompt := buildSuggestionPrompt(level, parent, profile)
	response, err := s.chat.ChatCompletion(ctx, coachPersona, prompt, ChatOptions{
		MaxTokens:   s.cfg.OpenAI.MaxTokens,
		Temperature: s.cfg.OpenAI.Temperature,
	})
	if err != nil {
		// トランスポート失敗はリトライせず、そのままフォールバックのトリガーとする
		logger.Warn("Suggestion generation degraded: transport error", "error", err)
		return fallbackDrafts(level, parent)
	}

	drafts, err := parseDrafts(response, draftCount(level))
	if err != nil {
		logger.Warn("Suggestion generation degraded: parse or validation failure", "error", err)
		return fallbackDrafts(level, parent)
	}

	logger.Info("AI goal suggestions generated", "count", len(drafts))
	return drafts
}

func draftCount(level model.GoalLevel) int {
	switch level {
	case model.LevelYear:
		return yearDraftCount
	case model.LevelMonth:
		return monthDraftCount
	default:
		return weekDraftCount
	}
}

// fallbackDrafts は決定的なフォールバック表からドラフトを返します。
// 月・週は親目標のカテゴリ、年は固定テンプレートがキーになります。
// 同じ入力に対して常に同一の結果を返すこと(再現性)がテスト対象の性質です。
func fallbackDrafts(level model.GoalLevel, parent *model.Goal) []model.GoalDraft {
	var src []model.GoalDraft
	switch level {
	case model.LevelYear:
		src = yearGoalTemplates
	case model.LevelMonth:
		src = monthGoalTemplates[parent.Category]
	default:
		src = weekGoalTemplates[parent.Category]
	}
	drafts := make([]model.GoalDraft, len(src))
	copy(drafts, src)
	return drafts
}

// buildSuggestionPrompt はプロフィールの全フィールドと親目標の情報を埋め込んだ
// レベル別のプロンプトを組み立てます。
func buildSuggestionPrompt(level model.GoalLevel, parent *model.Goal, profile *model.ProfileContext) string {
	var b strings.Builder

	if profile != nil {
		b.WriteString("ユーザープロフィール:\n")
		fmt.Fprintf(&b, "- 現在の状況: %s\n", profile.CurrentSituation)
		fmt.Fprintf(&b, "- コンフォートレベル: %d/10\n", profile.ComfortLevel)
		fmt.Fprintf(&b, "- 主な課題: %s\n", profile.MainChallenge)
		fmt.Fprintf(&b, "- 望む結果: %s\n", profile.DesiredOutcome)
		fmt.Fprintf(&b, "- 自分で思う強み: %s\n", profile.StrengthSelf)
		fmt.Fprintf(&b, "- 自分で思う弱み: %s\n", profile.WeaknessSelf)
		fmt.Fprintf(&b, "- 週あたりに使える時間: %s\n", profile.WeeklyCommitment)
		b.WriteString("\n")
	}

	if parent != nil {
		b.WriteString("上位の目標:\n")
		fmt.Fprintf(&b, "- タイトル: %s\n", parent.Title)
		fmt.Fprintf(&b, "- カテゴリ: %s\n", parent.Category)
		if parent.Description != "" {
			fmt.Fprintf(&b, "- 説明: %s\n", parent.Description)
		}
		b.WriteString("\n")
	}

	const format = `出力フォーマット: JSON配列のみ。各要素は {"title", "description", "category", "target_value"(任意の数値), "reasoning"}。
category は relationship / confidence / profile / social_skills / consistency のいずれか。`

	switch level {
	case model.LevelYear:
		fmt.Fprintf(&b, "この人に合った年間目標を%d個提案してください。それぞれ具体的・測定可能・現実的で、前向きなものにしてください。\n\n%s", yearDraftCount, format)
	case model.LevelMonth:
		fmt.Fprintf(&b, "上位の年間目標を踏まえ、30日以内に達成できる月間マイルストーンを%d個提案してください。\n\n%s", monthDraftCount, format)
	default:
		fmt.Fprintf(&b, "上位の月間目標を踏まえ、今週すぐ行動に移せる週間アクションを%d個提案してください。社交・実践・マインドセットを織り交ぜてください。\n\n%s", weekDraftCount, format)
	}

	return b.String()
}

// aiDraft はAI応答のJSONスキーマ
type aiDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	TargetValue *float64 `json:"target_value"`
	Reasoning   string   `json:"reasoning"`
}

// parseDrafts は自由形式のAI応答からJSON配列を抽出・検証します。
// 「候補JSONの抽出」と「スキーマ検証」の2段階パイプラインで、
// どちらの失敗も単一のフォールバックトリガーとして呼び出し元に返します。
func parseDrafts(response string, count int) ([]model.GoalDraft, error) {
	raw, err := extractJSONArray(response)
	if err != nil {
		return nil, err
	}

	var aiDrafts []aiDraft
	if err := json.Unmarshal([]byte(raw), &aiDrafts); err != nil {
		return nil, fmt.Errorf("invalid JSON in AI response: %w", err)
	}
	if len(aiDrafts) < count {
		return nil, fmt.Errorf("AI response contains %d drafts, want %d", len(aiDrafts), count)
	}

	drafts := make([]model.GoalDraft, 0, count)
	for _, d := range aiDrafts[:count] {
		if strings.TrimSpace(d.Title) == "" {
			return nil, errors.New("AI draft missing required field: title")
		}
		category := model.GoalCategory(d.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("AI draft has invalid category: %q", d.Category)
		}
		drafts = append(drafts, model.GoalDraft{
			Title:        d.Title,
			Description:  d.Description,
			Category:     category,
			TargetValue:  d.TargetValue,
			Reasoning:    d.Reasoning,
			AIConfidence: scoreDraft(d),
		})
	}
	return drafts, nil
}

// extractJSONArray は自由形式テキストから最初のJSON配列部分を切り出します
func extractJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON array found in AI response")
	}
	return s[start : end+1], nil
}

// scoreDraft はAI経由のドラフトに対する信頼度のヒューリスティックです。
// 情報量の多いドラフトほど高く、冗長なタイトルは減点。常に [0,1] に収めます。
func scoreDraft(d aiDraft) float64 {
	score := 0.7
	if strings.TrimSpace(d.Description) != "" {
		score += 0.1
	}
	if d.TargetValue != nil {
		score += 0.1
	}
	if strings.TrimSpace(d.Reasoning) != "" {
		score += 0.05
	}
	if len([]rune(d.Title)) > 80 {
		score -= 0.25
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
