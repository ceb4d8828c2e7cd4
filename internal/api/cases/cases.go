package cases

import (
	"net/http"

	dto "lootbox_backend/internal/api/dto/cases"
	"lootbox_backend/internal/api/httperr"
	"lootbox_backend/internal/converter"
	"lootbox_backend/internal/service"
	"lootbox_backend/pkg/req"
	"lootbox_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.SpinService
}

type Handler struct {
	serv service.SpinService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Open - открытие кейса: раскрывает закоммиченный сид и возвращает приз
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CaseOpenRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Open(r.Context(), converter.ToCaseOpenRequest(payload))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCaseOpenResponse(*result))
}

// List - список кейсов с ценой и версией таблицы шансов
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.serv.Cases(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCaseList(configs))
}
