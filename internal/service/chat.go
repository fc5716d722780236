package service

import (
	"context"
	"errors"
	"log/slog"

	"go_4_goal_wizard/internal/config"
)

// ChatOptions はAIトランスポートへの生成オプションです
type ChatOptions struct {
	MaxTokens   int
	Temperature float32
}

// ChatClient はAI補完トランスポートを抽象化します。
// system メッセージ(コーチのペルソナ)と user メッセージ(構造化プロンプト)を
// 1回ずつ送り、自由形式のテキスト応答を返します。リトライは行いません。
type ChatClient interface {
	ChatCompletion(ctx context.Context, system, user string, opts ChatOptions) (string, error)
}

// ErrChatDisabled はAIトランスポートが無効化されている場合に返されます
var ErrChatDisabled = errors.New("chat client disabled")

// --- DisabledChatClient ---
// APIキー未設定の環境用。常にエラーを返し、提案生成は
// 決定的なフォールバックテンプレートに退化する。
type DisabledChatClient struct{}

func (c *DisabledChatClient) ChatCompletion(ctx context.Context, system, user string, opts ChatOptions) (string, error) {
	return "", ErrChatDisabled
}

// --- NewChatClient ファクトリ関数 ---
func NewChatClient(cfg *config.Config) ChatClient {
	logger := slog.Default()
	switch cfg.OpenAI.Type {
	case "openai":
		logger.Info("Initializing OpenAI chat client...", "model", cfg.OpenAI.Model)
		return NewOpenAIChatClient(cfg)
	case "disabled":
		logger.Info("Initializing disabled chat client (fallback templates only)...")
		return &DisabledChatClient{}
	default:
		logger.Warn("Unknown chat client type, defaulting to disabled", "type", cfg.OpenAI.Type)
		return &DisabledChatClient{}
	}
}
