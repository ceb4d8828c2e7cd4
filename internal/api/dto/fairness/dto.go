package fairness

type CommitResponse struct {
	ServerSeedID string `json:"server_seed_id"`
	Hash         string `json:"hash"`
}

type RevealResponse struct {
	SpinLogID      string `json:"spin_log_id"`
	CaseID         string `json:"case_id"`
	ServerSeed     string `json:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Nonce          int    `json:"nonce"`
	OddsVersion    string `json:"odds_version"`
	RawRoll        string `json:"raw_roll"`
	Tier           string `json:"tier"`
	CoinID         string `json:"coin_id"`
	PayoutUSD      string `json:"payout_usd"`
}
