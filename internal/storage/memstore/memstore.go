// Package memstore реализация storage.Store поверх слайса в памяти. Используется в тестах
// и при запуске без базы данных.
package memstore

import (
	"context"
	"sync"

	"github.com/fsdevblog/groph-vending/internal/storage"
)

type Store[T storage.Entity] struct {
	mu      sync.RWMutex
	records []T
}

func New[T storage.Entity]() *Store[T] {
	return &Store[T]{}
}

// Save добавляет сущность. Если сущность с таким ID уже есть, она перезаписывается.
func (s *Store[T]) Save(_ context.Context, entity T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexByID(entity.EntityID()); i >= 0 {
		s.records[i] = entity
	} else {
		s.records = append(s.records, entity)
	}
	return &entity, nil
}

func (s *Store[T]) Update(_ context.Context, entity T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(entity.EntityID())
	if i < 0 {
		return false, nil
	}
	s.records[i] = entity
	return true, nil
}

func (s *Store[T]) Delete(_ context.Context, entity T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(entity.EntityID())
	if i < 0 {
		return false, nil
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return true, nil
}

func (s *Store[T]) FindByID(_ context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexByID(id); i >= 0 {
		// возвращаем копию, чтобы вызывающая сторона не могла мутировать хранилище в обход Update.
		record := s.records[i]
		return &record, nil
	}
	return nil, storage.ErrRecordNotFound
}

func (s *Store[T]) FindByName(_ context.Context, name string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.EntityName() == name {
			r := record
			return &r, nil
		}
	}
	return nil, storage.ErrRecordNotFound
}

func (s *Store[T]) FindAll(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]T, len(s.records))
	copy(all, s.records)
	return all, nil
}

// indexByID вызывается только под мьютексом.
func (s *Store[T]) indexByID(id string) int {
	for i, record := range s.records {
		if record.EntityID() == id {
			return i
		}
	}
	return -1
}
