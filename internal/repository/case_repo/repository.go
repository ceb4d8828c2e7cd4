package case_repo

import (
	"context"

	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"
)

// Реестр кейсов в памяти. Таблицы шансов загружаются из YAML при старте
// и после этого неизменяемы, поэтому блокировки не нужны
type repo struct {
	cases map[string]*model.CaseConfig
	order []string
}

func NewCaseRepository(configs []model.CaseConfig) repository.CaseRepository {
	cases := make(map[string]*model.CaseConfig, len(configs))
	order := make([]string, 0, len(configs))
	for i := range configs {
		c := configs[i]
		cases[c.CaseID] = &c
		order = append(order, c.CaseID)
	}

	return &repo{
		cases: cases,
		order: order,
	}
}

// GetCase - возвращает конфиг кейса или nil, если кейс не объявлен
func (r *repo) GetCase(_ context.Context, caseID string) (*model.CaseConfig, error) {
	cfg, ok := r.cases[caseID]
	if !ok {
		return nil, nil
	}
	return cfg, nil
}

// ListCases - возвращает кейсы в порядке объявления в конфиге
func (r *repo) ListCases(_ context.Context) ([]*model.CaseConfig, error) {
	list := make([]*model.CaseConfig, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.cases[id])
	}
	return list, nil
}
