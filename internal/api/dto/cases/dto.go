package cases

type CaseOpenRequest struct {
	CaseID       string `json:"case_id"`
	ServerSeedID string `json:"server_seed_id"`
	ClientSeed   string `json:"client_seed"`
	Nonce        int    `json:"nonce"`
}

type PrizeItem struct {
	CoinID   string `json:"coin_id"`
	Network  string `json:"network,omitempty"`
	Amount   string `json:"amount"`
	USDValue string `json:"usd_value"`
	Tier     string `json:"tier"`
}

type CaseOpenResponse struct {
	ServerSeed  string    `json:"server_seed"`
	OddsVersion string    `json:"odds_version"`
	Prize       PrizeItem `json:"prize"`
	FailStreak  int       `json:"fail_streak"`
	SpinLogID   string    `json:"spin_log_id"`
	Balance     string    `json:"balance"`
}

type CaseItem struct {
	CaseID      string `json:"case_id"`
	PriceUSD    string `json:"price_usd"`
	OddsVersion string `json:"odds_version"`
}
