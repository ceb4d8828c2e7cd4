package fairness

import (
	"net/http"

	"lootbox_backend/internal/api/httperr"
	"lootbox_backend/internal/converter"
	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/service"
	"lootbox_backend/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.FairnessService
}

type Handler struct {
	serv service.FairnessService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Commit - выдает commit-хэш серверного сида. Идемпотентен:
// пока сид не раскрыт, повторные вызовы возвращают тот же id и хэш
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	commit, err := h.serv.Commit(r.Context(), userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCommitResponse(*commit))
}

// Reveal - раскрытие завершенного спина для независимой проверки честности
func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	spinLogID := chi.URLParam(r, "spin_log_id")
	if spinLogID == "" {
		http.Error(w, "spin_log_id is required", http.StatusBadRequest)
		return
	}

	reveal, err := h.serv.Reveal(r.Context(), spinLogID, userID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRevealResponse(*reveal))
}
