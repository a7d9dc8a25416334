package notifier

import (
	"fmt"
	"strings"

	"DragonBonus/internal/model"
)

// FormatSummary renders the result of a volume-driven bonus calculation.
func FormatSummary(res *model.BonusResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("起始天数: %d\n", res.StartDay))
	b.WriteString(fmt.Sprintf("结束天数: %d\n", res.EndDay))
	b.WriteString(fmt.Sprintf("平均每天交易量: %g亿\n", res.AvgVolume))
	b.WriteString(fmt.Sprintf("最后释放龙币数量: %.0f\n", res.TotalRelease))
	b.WriteString(fmt.Sprintf("最后每个币总分红: ￥%g\n", res.TotalBonus))
	b.WriteString(fmt.Sprintf("平均每天每币分红: ￥%g\n", res.DailyBonus))
	return b.String()
}

// FormatSnapshot renders today's DT economics, with yesterday's row when one was recorded.
func FormatSnapshot(today, yesterday *model.DaySnapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🐉 <b>DT 日报</b> | %s\n\n", today.Date))
	b.WriteString(fmt.Sprintf("第 %d 天 | 第 %d 阶段\n", today.Day, today.Period))
	b.WriteString(fmt.Sprintf("今日释放: %.4f\n", today.TodayRelease))
	b.WriteString(fmt.Sprintf("累计释放: %.4f\n", today.TotalRelease))
	b.WriteString(fmt.Sprintf("24h交易额: ¥%.0f\n", today.Volume))
	b.WriteString(fmt.Sprintf("手续费收入: ¥%.2f\n", today.Income))
	b.WriteString(fmt.Sprintf("挖矿成本: ¥%.4f (高) | ¥%.4f (低)\n", today.CostHigh, today.CostLow))
	b.WriteString(fmt.Sprintf("每币分红: ¥%.4f\n", today.BonusPerCoin))

	if yesterday != nil {
		b.WriteString("  ─────────────────\n")
		b.WriteString(fmt.Sprintf("昨日(%s): 交易额 ¥%.0f | 每币分红 ¥%.4f", yesterday.Date, yesterday.Volume, yesterday.BonusPerCoin))
		if yesterday.BonusPerCoin > 0 {
			change := (today.BonusPerCoin - yesterday.BonusPerCoin) / yesterday.BonusPerCoin * 100
			b.WriteString(fmt.Sprintf(" (%+.1f%%)", change))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatHelp lists the commands the bot understands.
func FormatHelp() string {
	return "可用命令:\n• /today 今日分红\n• /calc <起始天> <结束天> <日均交易量(亿)>\n• /forecast [结束天] 按近期交易量预测分红"
}
