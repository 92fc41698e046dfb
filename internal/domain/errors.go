package domain

import "errors"

// Тексты бизнес-ошибок являются частью наблюдаемого контракта: вызывающий слой и тесты
// матчатся по ним, поэтому ошибки никогда не оборачиваются через %w с добавлением контекста.
var (
	ErrExists            = errors.New("Exists")
	ErrNotFound          = errors.New("Not Found")
	ErrInvalidCost       = errors.New("Invalid cost")
	ErrInvalidAmount     = errors.New("Invalid amount")
	ErrNotAuthorized     = errors.New("Not Authorized")
	ErrInsufficientFunds = errors.New("Insufficient funds")
	ErrNotEnoughStock    = errors.New("Not enough stock")
	ErrUpdateFailed      = errors.New("Failed to update")
	ErrDeleteFailed      = errors.New("Failed to delete")
	ErrRemoveFailed      = errors.New("Failed to remove")
	ErrInvalidDeposit    = errors.New("Invalid deposit")
	ErrAuthFailed        = errors.New("Authentication failed")
)

var businessErrors = []error{
	ErrExists,
	ErrNotFound,
	ErrInvalidCost,
	ErrInvalidAmount,
	ErrNotAuthorized,
	ErrInsufficientFunds,
	ErrNotEnoughStock,
	ErrUpdateFailed,
	ErrDeleteFailed,
	ErrRemoveFailed,
	ErrInvalidDeposit,
	ErrAuthFailed,
}

// IsBusiness сообщает, является ли ошибка ожидаемой бизнес-ошибкой. Все остальные ошибки
// считаются фатальными (сбой коллаборатора) и наверх уходят как 500.
func IsBusiness(err error) bool {
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return true
		}
	}
	return false
}
