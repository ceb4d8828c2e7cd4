package spin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
)

// Константы soft-pity
var (
	pityStep = decimal.RequireFromString("0.02")
	pityMax  = decimal.RequireFromString("0.20")
)

// 5^32, чтобы представить u/2^32 точным десятичным числом: u*5^32 со сдвигом -32
var pow5x32 = new(big.Int).Exp(big.NewInt(5), big.NewInt(32), nil)

// RollOutcome - результат чистого вычисления roll→reward
type RollOutcome struct {
	Tier         model.Tier
	Reward       model.Reward
	Roll         decimal.Decimal
	RollAdjusted decimal.Decimal
	PityBonus    decimal.Decimal
	MAC          []byte
}

// PityBonus - бонус за стрик: min((streak - pityAfter + 1) * 0.02, 0.20),
// ноль пока стрик не дошел до порога
func PityBonus(failStreak, pityAfter int) decimal.Decimal {
	if failStreak < pityAfter {
		return decimal.Zero
	}
	bonus := pityStep.Mul(decimal.NewFromInt(int64(failStreak - pityAfter + 1)))
	if bonus.GreaterThan(pityMax) {
		return pityMax
	}
	return bonus
}

// ComputeRoll - детерминированное отображение (сид, клиентский сид, nonce,
// таблица шансов, стрик) в выбранную награду. Чистая функция без I/O:
// третья сторона обязана получить тот же результат из тех же входов.
//
// roll = первые 4 байта HMAC_SHA256(seed, "{client_seed}:{nonce}") как
// big-endian uint32, деленные на 2^32. Бонус pity вычитается из roll:
// тиры упорядочены от частых к редким, сдвиг вниз смещает в дорогие корзины
func ComputeRoll(serverSeedHex, clientSeed string, nonce int, cfg *model.CaseConfig, failStreak int) (*RollOutcome, error) {
	key, err := hex.DecodeString(serverSeedHex)
	if err != nil {
		return nil, fmt.Errorf("server seed is not valid hex: %w", err)
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s:%d", clientSeed, nonce)
	digest := mac.Sum(nil)

	u := binary.BigEndian.Uint32(digest[:4])
	roll := decimal.NewFromBigInt(new(big.Int).Mul(big.NewInt(int64(u)), pow5x32), -32)

	bonus := PityBonus(failStreak, cfg.PityAfter)
	rollAdj := roll.Sub(bonus)
	if rollAdj.IsNegative() {
		rollAdj = decimal.Zero
	}

	tier, tierStart := selectTier(cfg.Tiers, rollAdj)

	// Нормализация в локальное пространство тира
	subRoll := decimal.Zero
	if tier.Chance.IsPositive() {
		subRoll = rollAdj.Sub(tierStart).Div(tier.Chance)
	}
	reward := selectReward(tier.Rewards, subRoll)

	return &RollOutcome{
		Tier:         tier,
		Reward:       reward,
		Roll:         roll,
		RollAdjusted: rollAdj,
		PityBonus:    bonus,
		MAC:          digest,
	}, nil
}

// selectTier - кумулятивный скан по объявленному порядку: первый тир,
// чья накопленная сумма строго превышает roll. Возвращает тир и нижнюю
// границу его кумулятивного интервала
func selectTier(tiers []model.Tier, rollAdj decimal.Decimal) (model.Tier, decimal.Decimal) {
	cum := decimal.Zero
	for _, t := range tiers {
		next := cum.Add(t.Chance)
		if rollAdj.LessThan(next) {
			return t, cum
		}
		cum = next
	}

	// Суммы из-за округления не дотянули до roll - детерминированно
	// выбираем последний тир
	last := tiers[len(tiers)-1]
	return last, cum.Sub(last.Chance)
}

// selectReward - тот же кумулятивный скан внутри тира по sub_chance
func selectReward(rewards []model.Reward, subRoll decimal.Decimal) model.Reward {
	cum := decimal.Zero
	for _, r := range rewards {
		cum = cum.Add(r.SubChance)
		if subRoll.LessThan(cum) {
			return r
		}
	}
	return rewards[len(rewards)-1]
}
