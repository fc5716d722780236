package service

import (
	"fmt"
	"time"
)

// MonthPeriod は base から offset か月後の期間キーを "YYYY-MM" 形式で返します。
// 月初めに正規化してから加算するため、月末日(31日など)でも桁飛びしません。
func MonthPeriod(base time.Time, offset int) string {
	t := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location()).AddDate(0, offset, 0)
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// WeekPeriod は base から offset 週間後のISO週キーを "YYYY-Www" 形式で返します。
// 年はISO週の属する年(暦年と異なる場合がある)を使います。
func WeekPeriod(base time.Time, offset int) string {
	t := base.AddDate(0, 0, 7*offset)
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
