package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/storage"
)

type UserService struct {
	users storage.Store[domain.User]
}

func NewUserService(users storage.Store[domain.User]) *UserService {
	return &UserService{users: users}
}

// UpdateUserArgs новые значения полей юзера. Пароль намеренно отсутствует:
// для его смены должно быть отдельное API.
type UpdateUserArgs struct {
	Username string
	Deposit  int
	Roles    []domain.Role
}

// Create создает юзера. Если юзер с таким ID уже сохранен, возвращает ошибку domain.ErrExists.
func (s *UserService) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	_, findErr := s.users.FindByID(ctx, user.ID)
	if findErr == nil {
		return nil, domain.ErrExists
	}
	if !errors.Is(findErr, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("creating user: %w", findErr)
	}

	if user.Roles == nil {
		user.Roles = []domain.Role{}
	}

	saved, saveErr := s.users.Save(ctx, user)
	if saveErr != nil {
		return nil, fmt.Errorf("creating user: %w", saveErr)
	}
	return saved, nil
}

// Update обновляет юзера с идентификатором userID новыми значениями args. ID внутри args
// не существует by construction, пароль не трогаем. Возвращает ошибки domain.ErrNotFound
// и domain.ErrUpdateFailed.
func (s *UserService) Update(ctx context.Context, userID string, args UpdateUserArgs) (*domain.User, error) {
	existing, findErr := s.users.FindByID(ctx, userID)
	if findErr != nil {
		if errors.Is(findErr, storage.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("updating user: %w", findErr)
	}

	existing.Username = args.Username
	existing.Deposit = args.Deposit
	existing.Roles = args.Roles
	if existing.Roles == nil {
		existing.Roles = []domain.Role{}
	}

	ok, updErr := s.users.Update(ctx, *existing)
	if updErr != nil {
		return nil, fmt.Errorf("updating user: %w", updErr)
	}
	if !ok {
		return nil, domain.ErrUpdateFailed
	}
	return existing, nil
}

// Delete удаляет юзера. Возвращает ошибки domain.ErrNotFound и domain.ErrRemoveFailed.
func (s *UserService) Delete(ctx context.Context, userID string) (*domain.User, error) {
	user, findErr := s.users.FindByID(ctx, userID)
	if findErr != nil {
		if errors.Is(findErr, storage.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deleting user: %w", findErr)
	}

	ok, delErr := s.users.Delete(ctx, *user)
	if delErr != nil {
		return nil, fmt.Errorf("deleting user: %w", delErr)
	}
	if !ok {
		return nil, domain.ErrRemoveFailed
	}
	return user, nil
}

// GetByID возвращает юзера или ошибку domain.ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting all users: %w", err)
	}
	return users, nil
}

// Authenticate аутентифицирует юзера по паре юзернейм/пароль. Пароли сравниваются как
// есть - контракт исходной системы, не security-hardened. Возвращает ошибки
// domain.ErrNotFound и domain.ErrAuthFailed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, findErr := s.users.FindByName(ctx, username)
	if findErr != nil {
		if errors.Is(findErr, storage.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("authenticating user: %w", findErr)
	}

	if user.Password != password {
		return nil, domain.ErrAuthFailed
	}
	return user, nil
}
