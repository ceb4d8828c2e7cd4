package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func writeCasesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write cases file: %v", err)
	}
	return path
}

const validCasesYAML = `
cases:
  - case_id: case_5
    price_usd: "5.00"
    pity_after: 10
    pity_bonus_tier: jackpot
    global_pool_usd: "50000.00"
    ev_target: "0.92"
    tiers:
      - name: common
        chance: "0.95"
        rewards:
          - coin_id: tether
            network: TRC20
            amount: "1.50"
            sub_chance: "1.0"
      - name: jackpot
        chance: "0.05"
        rewards:
          - coin_id: bitcoin
            network: BTC
            amount: "0.001"
            sub_chance: "1.0"
`

func TestNewCaseConfigsFromYAML_Valid(t *testing.T) {
	path := writeCasesFile(t, validCasesYAML)

	configs, err := NewCaseConfigsFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("expected 1 case, got %d", len(configs))
	}

	cfg := configs[0]
	if cfg.CaseID != "case_5" {
		t.Fatalf("case_id = %q", cfg.CaseID)
	}
	if !cfg.PriceUSD.Equal(dec("5.00")) {
		t.Fatalf("price = %s", cfg.PriceUSD)
	}
	if cfg.PityAfter != 10 || cfg.PityBonusTier != "jackpot" {
		t.Fatalf("pity config: after=%d tier=%q", cfg.PityAfter, cfg.PityBonusTier)
	}
	if len(cfg.Tiers) != 2 || cfg.Tiers[0].Name != "common" || cfg.Tiers[1].Name != "jackpot" {
		t.Fatalf("tiers must keep declared order: %+v", cfg.Tiers)
	}

	// Версия по умолчанию - префикс контрольной суммы содержимого
	if len(cfg.OddsVersions) != 1 {
		t.Fatalf("expected one odds version")
	}
	v := cfg.OddsVersions[0]
	if len(v.SHA256) != 64 {
		t.Fatalf("sha256 length = %d", len(v.SHA256))
	}
	if v.Version != v.SHA256[:12] {
		t.Fatalf("default version must be checksum prefix: %q vs %q", v.Version, v.SHA256)
	}
	if cfg.OddsVersionCurrent() != v.Version {
		t.Fatalf("current version mismatch")
	}
}

func TestNewCaseConfigsFromYAML_ExplicitVersion(t *testing.T) {
	content := strings.Replace(validCasesYAML, "ev_target: \"0.92\"", "ev_target: \"0.92\"\n    version: \"2026-08-v3\"", 1)
	path := writeCasesFile(t, content)

	configs, err := NewCaseConfigsFromYAML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := configs[0].OddsVersionCurrent(); got != "2026-08-v3" {
		t.Fatalf("version = %q, want explicit one", got)
	}
}

func TestNewCaseConfigsFromYAML_TierSumMismatch(t *testing.T) {
	content := strings.Replace(validCasesYAML, "chance: \"0.95\"", "chance: \"0.90\"", 1)
	path := writeCasesFile(t, content)

	_, err := NewCaseConfigsFromYAML(path)
	if err == nil || !strings.Contains(err.Error(), "sum") {
		t.Fatalf("expected tier sum error, got %v", err)
	}
}

func TestNewCaseConfigsFromYAML_SubChanceSumMismatch(t *testing.T) {
	content := strings.Replace(validCasesYAML, "sub_chance: \"1.0\"", "sub_chance: \"0.5\"", 1)
	path := writeCasesFile(t, content)

	_, err := NewCaseConfigsFromYAML(path)
	if err == nil || !strings.Contains(err.Error(), "sub_chance") {
		t.Fatalf("expected sub_chance sum error, got %v", err)
	}
}

func TestNewCaseConfigsFromYAML_UndeclaredPityTier(t *testing.T) {
	content := strings.Replace(validCasesYAML, "pity_bonus_tier: jackpot", "pity_bonus_tier: mythic", 1)
	path := writeCasesFile(t, content)

	_, err := NewCaseConfigsFromYAML(path)
	if err == nil || !strings.Contains(err.Error(), "mythic") {
		t.Fatalf("expected undeclared pity tier error, got %v", err)
	}
}

func TestNewCaseConfigsFromYAML_NonPositivePrice(t *testing.T) {
	content := strings.Replace(validCasesYAML, "price_usd: \"5.00\"", "price_usd: \"0\"", 1)
	path := writeCasesFile(t, content)

	_, err := NewCaseConfigsFromYAML(path)
	if err == nil || !strings.Contains(err.Error(), "price_usd") {
		t.Fatalf("expected price error, got %v", err)
	}
}

func TestNewCaseConfigsFromYAML_EmptyFile(t *testing.T) {
	path := writeCasesFile(t, "cases: []\n")

	_, err := NewCaseConfigsFromYAML(path)
	if err == nil {
		t.Fatalf("expected error for empty cases list")
	}
}
