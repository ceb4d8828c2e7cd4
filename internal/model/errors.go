package model

import "errors"

// Типизированные ошибки спина. API-слой отображает их в HTTP-статусы,
// сервисы пробрасывают без переинтерпретации
var (
	// Сид не найден, принадлежит другому пользователю или уже использован
	ErrSeedNotAvailable = errors.New("server seed not available")
	// Хэш сида не совпал после раскрытия — повреждение хранилища
	ErrSeedIntegrity = errors.New("server seed hash mismatch")
	// Неизвестный case_id
	ErrInvalidCase = errors.New("invalid case")
	// Резерв не покрывает выплату
	ErrReserveLow = errors.New("reserve low")
	// Выплата больше разового лимита
	ErrPayoutExceedsMax = errors.New("payout exceeds max")
	// Резерв ниже статистического буфера — глобальный стоп выплат
	ErrMaintenanceMode = errors.New("maintenance mode")
	// Нет курса для монеты выигрыша
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	// Недостаточно средств на внутреннем балансе
	ErrInsufficientBalance = errors.New("insufficient balance")
	// Запись лога спина не найдена или принадлежит другому пользователю
	ErrSpinNotFound = errors.New("spin not found")
)
