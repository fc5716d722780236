package service

import (
	"go_4_goal_wizard/internal/model"
)

func f64(v float64) *float64 { return &v }

// yearGoalTemplates はプロフィール未登録時やAI失敗時に返す定型の年目標です。
// 順序も内容も固定で、同じ入力に対して常に同じ結果を返します。
var yearGoalTemplates = []model.GoalDraft{
	{
		Title:        "真剣な交際につながる相手を見つける",
		Description:  "意味のある長期的な関係を築くことに集中する",
		Category:     model.CategoryRelationship,
		Reasoning:    "多くの利用者に共通する定番の目標",
		AIConfidence: 0.9,
	},
	{
		Title:        "会話とデートのスキルを磨く",
		Description:  "自然な会話力とデートでの振る舞いを身につける",
		Category:     model.CategorySocialSkills,
		Reasoning:    "多くの利用者に共通する定番の目標",
		AIConfidence: 0.85,
	},
	{
		Title:        "自分への自信を育てる",
		Description:  "デートや社交の場で臆さない自信を積み上げる",
		Category:     model.CategoryConfidence,
		Reasoning:    "多くの利用者に共通する定番の目標",
		AIConfidence: 0.8,
	},
	{
		Title:        "プロフィールを納得いく形に仕上げる",
		Description:  "マッチを引き寄せるプロフィールを作り込む",
		Category:     model.CategoryProfile,
		Reasoning:    "多くの利用者に共通する定番の目標",
		AIConfidence: 0.75,
	},
	{
		Title:        "月2回のデートを安定して実現する",
		Description:  "継続的なデートの習慣とモメンタムを作る",
		Category:     model.CategoryConsistency,
		Reasoning:    "多くの利用者に共通する定番の目標",
		AIConfidence: 0.7,
	},
}

// monthGoalTemplates は親(年目標)のカテゴリをキーとする月目標のフォールバック表。
// 各カテゴリにつき必ず monthDraftCount 件。
var monthGoalTemplates = map[model.GoalCategory][]model.GoalDraft{
	model.CategoryRelationship: {
		{Title: "質の高いマッチに向けてプロフィールを最適化する", Category: model.CategoryProfile, TargetValue: f64(1), AIConfidence: 0.9},
		{Title: "意味のある会話を5回続ける", Category: model.CategorySocialSkills, TargetValue: f64(5), AIConfidence: 0.8},
		{Title: "デートを2回計画して実行する", Category: model.CategoryConsistency, TargetValue: f64(2), AIConfidence: 0.7},
	},
	model.CategoryConfidence: {
		{Title: "毎日1回、褒める・褒められる練習をする", Category: model.CategoryConfidence, TargetValue: f64(30), AIConfidence: 0.9},
		{Title: "プロフィール写真を撮り直す", Category: model.CategoryProfile, TargetValue: f64(1), AIConfidence: 0.8},
		{Title: "初対面の人に3回話しかける", Category: model.CategorySocialSkills, TargetValue: f64(3), AIConfidence: 0.7},
	},
	model.CategoryProfile: {
		{Title: "自然光で写真を5枚撮影する", Category: model.CategoryProfile, TargetValue: f64(5), AIConfidence: 0.9},
		{Title: "自己紹介文を書き上げる", Category: model.CategoryProfile, TargetValue: f64(1), AIConfidence: 0.8},
		{Title: "友人2人にプロフィールのフィードバックをもらう", Category: model.CategorySocialSkills, TargetValue: f64(2), AIConfidence: 0.6},
	},
	model.CategorySocialSkills: {
		{Title: "マッチ相手への最初のメッセージを10回送る", Category: model.CategorySocialSkills, TargetValue: f64(10), AIConfidence: 0.85},
		{Title: "会話を10分以上続ける練習を5回する", Category: model.CategorySocialSkills, TargetValue: f64(5), AIConfidence: 0.75},
		{Title: "週1回は新しい社交の場に参加する", Category: model.CategoryConsistency, TargetValue: f64(4), AIConfidence: 0.65},
	},
	model.CategoryConsistency: {
		{Title: "アプリを週4日はアクティブに使う", Category: model.CategoryConsistency, TargetValue: f64(16), AIConfidence: 0.85},
		{Title: "毎週の振り返りを4回行う", Category: model.CategoryConsistency, TargetValue: f64(4), AIConfidence: 0.75},
		{Title: "メッセージへの返信を24時間以内に返す習慣をつける", Category: model.CategorySocialSkills, TargetValue: f64(20), AIConfidence: 0.6},
	},
}

// weekGoalTemplates は親(月目標)のカテゴリをキーとする週目標のフォールバック表。
// 各カテゴリにつき必ず weekDraftCount 件。
var weekGoalTemplates = map[model.GoalCategory][]model.GoalDraft{
	model.CategoryRelationship: {
		{Title: "マッチ相手に3通メッセージを送る", Category: model.CategorySocialSkills, TargetValue: f64(3), AIConfidence: 0.8},
		{Title: "気になる相手をデートに誘う", Category: model.CategoryRelationship, TargetValue: f64(1), AIConfidence: 0.7},
		{Title: "会話の中で相手への質問を増やす", Category: model.CategorySocialSkills, TargetValue: f64(5), AIConfidence: 0.65},
		{Title: "デート候補の場所を3つ調べる", Category: model.CategoryConsistency, TargetValue: f64(3), AIConfidence: 0.6},
	},
	model.CategoryConfidence: {
		{Title: "毎日、鏡の前で自己肯定の練習をする", Category: model.CategoryConfidence, TargetValue: f64(7), AIConfidence: 0.8},
		{Title: "小さな成功体験を3つ書き出す", Category: model.CategoryConfidence, TargetValue: f64(3), AIConfidence: 0.75},
		{Title: "初対面の人と雑談を1回する", Category: model.CategorySocialSkills, TargetValue: f64(1), AIConfidence: 0.7},
		{Title: "姿勢と身だしなみを毎朝整える", Category: model.CategoryConsistency, TargetValue: f64(7), AIConfidence: 0.6},
	},
	model.CategoryProfile: {
		{Title: "新しい写真を3枚撮る", Category: model.CategoryProfile, TargetValue: f64(3), AIConfidence: 0.9},
		{Title: "プロフィール文を書き上げる", Category: model.CategoryProfile, TargetValue: f64(1), AIConfidence: 0.8},
		{Title: "メッセージを2通送って反応を見る", Category: model.CategorySocialSkills, TargetValue: f64(2), AIConfidence: 0.7},
		{Title: "3日間はアプリにログインする", Category: model.CategoryConsistency, TargetValue: f64(3), AIConfidence: 0.6},
	},
	model.CategorySocialSkills: {
		{Title: "最初のメッセージを3通、自分の言葉で書く", Category: model.CategorySocialSkills, TargetValue: f64(3), AIConfidence: 0.85},
		{Title: "会話で相手の話を深掘りする質問を使う", Category: model.CategorySocialSkills, TargetValue: f64(5), AIConfidence: 0.75},
		{Title: "電話かビデオ通話を1回してみる", Category: model.CategoryConfidence, TargetValue: f64(1), AIConfidence: 0.65},
		{Title: "会話記録を振り返って改善点を1つ決める", Category: model.CategoryConsistency, TargetValue: f64(1), AIConfidence: 0.6},
	},
	model.CategoryConsistency: {
		{Title: "毎日10分、アプリでのやり取りに時間を使う", Category: model.CategoryConsistency, TargetValue: f64(7), AIConfidence: 0.85},
		{Title: "週の行動計画を立てて見直す", Category: model.CategoryConsistency, TargetValue: f64(1), AIConfidence: 0.75},
		{Title: "新しいマッチに2通メッセージを送る", Category: model.CategorySocialSkills, TargetValue: f64(2), AIConfidence: 0.7},
		{Title: "デートに関する記事を1本読む", Category: model.CategoryConfidence, TargetValue: f64(1), AIConfidence: 0.6},
	},
}
