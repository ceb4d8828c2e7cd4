package env

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Допуск на накопленную ошибку округления кумулятивных сумм шансов
var chanceTolerance = decimal.RequireFromString("0.000001")

type rewardYAML struct {
	CoinID    string `yaml:"coin_id"`
	Network   string `yaml:"network"`
	Amount    string `yaml:"amount"`
	SubChance string `yaml:"sub_chance"`
}

type tierYAML struct {
	Name    string       `yaml:"name"`
	Chance  string       `yaml:"chance"`
	Rewards []rewardYAML `yaml:"rewards"`
}

type caseYAML struct {
	CaseID        string     `yaml:"case_id"`
	PriceUSD      string     `yaml:"price_usd"`
	PityAfter     int        `yaml:"pity_after"`
	PityBonusTier string     `yaml:"pity_bonus_tier"`
	GlobalPoolUSD string     `yaml:"global_pool_usd"`
	EVTarget      string     `yaml:"ev_target"`
	Version       string     `yaml:"version"`
	Tiers         []tierYAML `yaml:"tiers"`
}

type casesFileYAML struct {
	Cases []caseYAML `yaml:"cases"`
}

// NewCaseConfigsFromYAML - загружает таблицы шансов кейсов из YAML файла.
// Невалидная таблица (суммы шансов не сходятся к 1.0) - ошибка конфигурации,
// приложение не должно стартовать
func NewCaseConfigsFromYAML(path string) ([]model.CaseConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cases config: %w", err)
	}

	var file casesFileYAML
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cases config: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("cases config is empty")
	}

	configs := make([]model.CaseConfig, 0, len(file.Cases))
	for _, c := range file.Cases {
		cfg, err := buildCaseConfig(c)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.CaseID, err)
		}
		configs = append(configs, *cfg)
	}

	return configs, nil
}

func buildCaseConfig(c caseYAML) (*model.CaseConfig, error) {
	if c.CaseID == "" {
		return nil, fmt.Errorf("case_id is required")
	}
	if len(c.Tiers) == 0 {
		return nil, fmt.Errorf("at least one tier is required")
	}

	price, err := decimal.NewFromString(c.PriceUSD)
	if err != nil {
		return nil, fmt.Errorf("invalid price_usd: %w", err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("price_usd must be positive")
	}

	globalPool, err := decimal.NewFromString(c.GlobalPoolUSD)
	if err != nil {
		return nil, fmt.Errorf("invalid global_pool_usd: %w", err)
	}

	evTarget, err := decimal.NewFromString(c.EVTarget)
	if err != nil {
		return nil, fmt.Errorf("invalid ev_target: %w", err)
	}

	// Тиры разбираем в объявленном порядке: порядок определяет кумулятивный скан
	tiers := make([]model.Tier, 0, len(c.Tiers))
	tierSum := decimal.Zero
	bonusTierFound := false
	for _, t := range c.Tiers {
		tier, err := buildTier(t)
		if err != nil {
			return nil, err
		}
		tierSum = tierSum.Add(tier.Chance)
		if tier.Name == c.PityBonusTier {
			bonusTierFound = true
		}
		tiers = append(tiers, *tier)
	}

	if !withinTolerance(tierSum) {
		return nil, fmt.Errorf("tier chances sum to %s, expected 1.0", tierSum)
	}
	if c.PityBonusTier != "" && !bonusTierFound {
		return nil, fmt.Errorf("pity_bonus_tier %q is not a declared tier", c.PityBonusTier)
	}

	// Версия таблицы: хэш содержимого кейса, чтобы спин был воспроизводим
	// против именно той таблицы, которая использовалась
	sum, err := caseChecksum(c)
	if err != nil {
		return nil, err
	}
	version := c.Version
	if version == "" {
		version = sum[:12]
	}

	return &model.CaseConfig{
		CaseID:        c.CaseID,
		PriceUSD:      price,
		Tiers:         tiers,
		PityAfter:     c.PityAfter,
		PityBonusTier: c.PityBonusTier,
		GlobalPoolUSD: globalPool,
		EVTarget:      evTarget,
		OddsVersions: []model.OddsVersion{
			{
				Version:    version,
				SHA256:     sum,
				UploadedAt: time.Now(),
			},
		},
	}, nil
}

func buildTier(t tierYAML) (*model.Tier, error) {
	if t.Name == "" {
		return nil, fmt.Errorf("tier name is required")
	}
	if len(t.Rewards) == 0 {
		return nil, fmt.Errorf("tier %q: at least one reward is required", t.Name)
	}

	chance, err := decimal.NewFromString(t.Chance)
	if err != nil {
		return nil, fmt.Errorf("tier %q: invalid chance: %w", t.Name, err)
	}
	if chance.IsNegative() {
		return nil, fmt.Errorf("tier %q: chance must be non-negative", t.Name)
	}

	rewards := make([]model.Reward, 0, len(t.Rewards))
	subSum := decimal.Zero
	for _, r := range t.Rewards {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("tier %q: invalid reward amount: %w", t.Name, err)
		}
		subChance, err := decimal.NewFromString(r.SubChance)
		if err != nil {
			return nil, fmt.Errorf("tier %q: invalid sub_chance: %w", t.Name, err)
		}
		if subChance.IsNegative() {
			return nil, fmt.Errorf("tier %q: sub_chance must be non-negative", t.Name)
		}
		subSum = subSum.Add(subChance)
		rewards = append(rewards, model.Reward{
			CoinID:    r.CoinID,
			Amount:    amount,
			Network:   r.Network,
			SubChance: subChance,
		})
	}

	if !withinTolerance(subSum) {
		return nil, fmt.Errorf("tier %q: sub_chances sum to %s, expected 1.0", t.Name, subSum)
	}

	return &model.Tier{
		Name:    t.Name,
		Chance:  chance,
		Rewards: rewards,
	}, nil
}

func withinTolerance(sum decimal.Decimal) bool {
	return sum.Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(chanceTolerance)
}

func caseChecksum(c caseYAML) (string, error) {
	body, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(body)
	return hex.EncodeToString(h[:]), nil
}
