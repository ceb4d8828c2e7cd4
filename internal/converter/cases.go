package converter

import (
	dto "lootbox_backend/internal/api/dto/cases"
	"lootbox_backend/internal/model"
)

func ToCaseOpenRequest(req dto.CaseOpenRequest) model.CaseOpenRequest {
	return model.CaseOpenRequest{
		CaseID:       req.CaseID,
		ServerSeedID: req.ServerSeedID,
		ClientSeed:   req.ClientSeed,
		Nonce:        req.Nonce,
	}
}

func ToCaseOpenResponse(res model.CaseOpenResult) dto.CaseOpenResponse {
	return dto.CaseOpenResponse{
		ServerSeed:  res.ServerSeed,
		OddsVersion: res.OddsVersion,
		Prize: dto.PrizeItem{
			CoinID:   res.CoinID,
			Network:  res.Network,
			Amount:   res.Amount.String(),
			USDValue: res.PayoutUSD.String(),
			Tier:     res.Tier,
		},
		FailStreak: res.FailStreak,
		SpinLogID:  res.SpinLogID,
		Balance:    res.Balance.String(),
	}
}

func ToCaseList(configs []*model.CaseConfig) []dto.CaseItem {
	items := make([]dto.CaseItem, 0, len(configs))
	for _, cfg := range configs {
		items = append(items, dto.CaseItem{
			CaseID:      cfg.CaseID,
			PriceUSD:    cfg.PriceUSD.String(),
			OddsVersion: cfg.OddsVersionCurrent(),
		})
	}
	return items
}
