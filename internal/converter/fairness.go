package converter

import (
	dto "lootbox_backend/internal/api/dto/fairness"
	"lootbox_backend/internal/model"
)

func ToCommitResponse(commit model.SeedCommit) dto.CommitResponse {
	return dto.CommitResponse{
		ServerSeedID: commit.ServerSeedID,
		Hash:         commit.Hash,
	}
}

func ToRevealResponse(reveal model.RevealData) dto.RevealResponse {
	return dto.RevealResponse{
		SpinLogID:      reveal.SpinLogID,
		CaseID:         reveal.CaseID,
		ServerSeed:     reveal.ServerSeed,
		ServerSeedHash: reveal.ServerSeedHash,
		ClientSeed:     reveal.ClientSeed,
		Nonce:          reveal.Nonce,
		OddsVersion:    reveal.OddsVersion,
		RawRoll:        reveal.RawRoll.String(),
		Tier:           reveal.Tier,
		CoinID:         reveal.CoinID,
		PayoutUSD:      reveal.PayoutUSD.String(),
	}
}
