package spin

import (
	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
)

// ApplyOutcome - обновляет pity-стрик по результату спина.
// Редкость определяется явной конфигурацией: стрик сбрасывается только
// если выпавший тир совпал с pity_bonus_tier кейса, иначе растет на 1.
// Возвращает бонус, который получит СЛЕДУЮЩИЙ спин - на текущий результат
// он не влияет и пишется в лог для аудита
func ApplyOutcome(stat *model.PlayerStat, tierName string, cfg *model.CaseConfig) decimal.Decimal {
	if cfg.PityBonusTier != "" && tierName == cfg.PityBonusTier {
		stat.FailStreak = 0
	} else {
		stat.FailStreak++
	}

	return PityBonus(stat.FailStreak, cfg.PityAfter)
}
