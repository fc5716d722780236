// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "GoalWizard"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultOpenAIMaxTokens   = 1500
	DefaultOpenAITemperature = 0.7
)
