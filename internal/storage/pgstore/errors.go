package pgstore

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/groph-vending/internal/storage"
)

const uniqueViolationCode = "23505"

// convertErr преобразует ошибку драйвера к стандартному виду слоя хранилища.
// Особенности:
//   - pgx.ErrNoRows превращается в storage.ErrRecordNotFound;
//   - нарушение уникального ключа (uniqueViolationCode) - в storage.ErrDuplicateKey;
//   - все остальные ошибки возвращаются как storage.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[pgstore/%s] %w", msg, storage.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	errType := storage.ErrUnknown

	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		errType = storage.ErrDuplicateKey
	}

	return fmt.Errorf("[pgstore/%s] %w: %s", msg, errType, err.Error())
}
