package errors

import "errors"

// Общие классы ошибок приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок аутентификации (нет токена, неверный токен).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия
	// (не лидер команды, не организатор охоты).
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (охота вне активного окна,
	// закончились скипы, нет доступных загадок).
	ErrConflict = errors.New("resource state conflict")
)

// ReasonError несет машиночитаемый код причины отказа поверх одного из общих
// классов выше. Хендлеры извлекают код через ReasonCode и возвращают его в JSON,
// а HTTP-статус определяется через errors.Is по обернутому классу.
type ReasonError struct {
	Code string // например "no_skips_left", "puzzle_unsolved"
	Err  error  // один из классов выше
}

func (e *ReasonError) Error() string {
	return e.Code + ": " + e.Err.Error()
}

func (e *ReasonError) Unwrap() error {
	return e.Err
}

// NewReason создает ReasonError с кодом причины над базовым классом ошибки
func NewReason(code string, base error) error {
	return &ReasonError{Code: code, Err: base}
}

// ReasonCode возвращает код причины из цепочки ошибок или пустую строку
func ReasonCode(err error) string {
	var re *ReasonError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
