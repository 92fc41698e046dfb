// Package storage определяет контракт хранилища сущностей. Бизнес-слой работает только
// с этим контрактом; конкретная реализация (память или postgres) выбирается на этапе
// сборки приложения.
package storage

import "context"

// Entity сущность, которую можно хранить. ID и имя считаются уникальными в пределах коллекции.
type Entity interface {
	EntityID() string
	EntityName() string
}

//go:generate mockgen -source=storage.go -destination=mocks/mocks.go -package=mocks
type Store[T Entity] interface {
	// Save добавляет сущность в хранилище. Если сущность с таким ID уже есть, перезаписывает её.
	Save(ctx context.Context, entity T) (*T, error)
	// Update заменяет существующую запись целиком. Возвращает false, если записи с таким ID нет.
	Update(ctx context.Context, entity T) (bool, error)
	// Delete удаляет сущность. Возвращает false, если удалять было нечего.
	Delete(ctx context.Context, entity T) (bool, error)
	// FindByID возвращает ошибку ErrRecordNotFound, если запись не найдена.
	FindByID(ctx context.Context, id string) (*T, error)
	// FindByName возвращает ошибку ErrRecordNotFound, если запись не найдена.
	FindByName(ctx context.Context, name string) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
}
