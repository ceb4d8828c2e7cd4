package rate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lootbox_backend/internal/config"
	"lootbox_backend/internal/model"

	"github.com/shopspring/decimal"
)

// Cache - кэш курсов в памяти. Спин читает курс синхронно,
// фоновая горутина периодически обновляет значения из источника цен
type Cache struct {
	cfg    config.RateConfig
	client *http.Client

	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

func NewCache(cfg config.RateConfig) *Cache {
	return &Cache{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		rates:  make(map[string]decimal.Decimal),
	}
}

// GetRate - USD-курс монеты. Отсутствующий или нулевой курс - это
// "курс недоступен": спин должен быть отклонен, а не оплачен нулем
func (c *Cache) GetRate(_ context.Context, coinID string) (decimal.Decimal, error) {
	c.mu.RLock()
	rateUSD, ok := c.rates[coinID]
	c.mu.RUnlock()

	if !ok || !rateUSD.IsPositive() {
		return decimal.Zero, model.ErrRateUnavailable
	}

	return rateUSD, nil
}

// Set - устанавливает курс напрямую (бутстрап стейблкоинов)
func (c *Cache) Set(coinID string, rateUSD decimal.Decimal) {
	c.mu.Lock()
	c.rates[coinID] = rateUSD
	c.mu.Unlock()
}

// Run - цикл обновления кэша. Блокируется до отмены контекста
func (c *Cache) Run(ctx context.Context, coins []string) {
	if err := c.refresh(ctx, coins); err != nil {
		log.Printf("rate refresh failed: %v", err)
	}

	ticker := time.NewTicker(c.cfg.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.refresh(ctx, coins); err != nil {
				log.Printf("rate refresh failed: %v", err)
			}
		}
	}
}

// refresh - один опрос источника цен.
// Формат ответа coingecko-стиля: {"dogecoin": {"usd": 0.12}, ...}
func (c *Cache) refresh(ctx context.Context, coins []string) error {
	if len(coins) == 0 {
		return nil
	}

	reqURL, err := url.Parse(c.cfg.PriceURL())
	if err != nil {
		return err
	}
	q := reqURL.Query()
	q.Set("ids", strings.Join(coins, ","))
	q.Set("vs_currencies", "usd")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("price source returned %s", resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var payload map[string]map[string]json.Number
	if err := dec.Decode(&payload); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for coinID, prices := range payload {
		usd, ok := prices["usd"]
		if !ok {
			continue
		}
		rateUSD, err := decimal.NewFromString(usd.String())
		if err != nil {
			log.Printf("invalid usd rate for %s: %v", coinID, err)
			continue
		}
		c.rates[coinID] = rateUSD
	}

	return nil
}
