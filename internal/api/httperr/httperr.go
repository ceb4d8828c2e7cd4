package httperr

import (
	"errors"
	"net/http"

	"lootbox_backend/internal/model"
)

// Write - отображает типизированные ошибки домена в HTTP-статусы.
// Конкретная причина отказа сохраняется в теле ответа как есть
func Write(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrSeedNotAvailable),
		errors.Is(err, model.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCase),
		errors.Is(err, model.ErrSpinNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrReserveLow),
		errors.Is(err, model.ErrPayoutExceedsMax),
		errors.Is(err, model.ErrMaintenanceMode),
		errors.Is(err, model.ErrRateUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
