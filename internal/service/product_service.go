package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/storage"
)

type ProductService struct {
	products storage.Store[domain.Product]
}

func NewProductService(products storage.Store[domain.Product]) *ProductService {
	return &ProductService{products: products}
}

// ProductArgs значения полей продукта для Create/Update. Cost и AmountAvailable указатели:
// отсутствие значения - самостоятельный невалидный кейс, отличный от нуля.
type ProductArgs struct {
	ID              string
	Name            string
	Cost            *int
	AmountAvailable *int
}

// validate проверяет бизнес-правила стоимости и остатка. Возвращает ошибки
// domain.ErrInvalidCost и domain.ErrInvalidAmount.
func (a ProductArgs) validate() error {
	if a.Cost == nil || *a.Cost <= 0 || *a.Cost%5 != 0 {
		return domain.ErrInvalidCost
	}
	if a.AmountAvailable == nil || *a.AmountAvailable < 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

// Create создает продукт от имени юзера user. SellerID всегда выставляется в user.ID,
// что бы ни пришло от вызывающей стороны. Возвращает ошибки domain.ErrExists,
// domain.ErrInvalidCost, domain.ErrInvalidAmount.
func (s *ProductService) Create(ctx context.Context, user domain.User, args ProductArgs) (*domain.Product, error) {
	_, findErr := s.products.FindByID(ctx, args.ID)
	if findErr == nil {
		return nil, domain.ErrExists
	}
	if !errors.Is(findErr, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("creating product: %w", findErr)
	}

	if valErr := args.validate(); valErr != nil {
		return nil, valErr
	}

	product := domain.Product{
		ID:              args.ID,
		Name:            args.Name,
		Cost:            *args.Cost,
		AmountAvailable: *args.AmountAvailable,
		SellerID:        user.ID,
	}
	saved, saveErr := s.products.Save(ctx, product)
	if saveErr != nil {
		return nil, fmt.Errorf("creating product: %w", saveErr)
	}
	return saved, nil
}

// Update обновляет продукт productID. Обновлять продукт может только его продавец.
// ID и SellerID после создания неизменяемы. Возвращает ошибки domain.ErrNotFound,
// domain.ErrNotAuthorized и ошибки валидации как у Create.
func (s *ProductService) Update(
	ctx context.Context,
	user domain.User,
	productID string,
	args ProductArgs,
) (*domain.Product, error) {
	existing, findErr := s.products.FindByID(ctx, productID)
	if findErr != nil {
		if errors.Is(findErr, storage.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("updating product: %w", findErr)
	}

	if existing.SellerID != user.ID {
		return nil, domain.ErrNotAuthorized
	}

	if valErr := args.validate(); valErr != nil {
		return nil, valErr
	}

	existing.Cost = *args.Cost
	existing.AmountAvailable = *args.AmountAvailable
	existing.Name = args.Name

	ok, updErr := s.products.Update(ctx, *existing)
	if updErr != nil {
		return nil, fmt.Errorf("updating product: %w", updErr)
	}
	if !ok {
		return nil, domain.ErrUpdateFailed
	}
	return existing, nil
}

// Delete удаляет продукт productID и возвращает удаленный снапшот. Удалять продукт может
// только его продавец. Возвращает ошибки domain.ErrNotFound, domain.ErrNotAuthorized
// и domain.ErrDeleteFailed.
func (s *ProductService) Delete(ctx context.Context, user domain.User, productID string) (*domain.Product, error) {
	existing, findErr := s.products.FindByID(ctx, productID)
	if findErr != nil {
		if errors.Is(findErr, storage.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deleting product: %w", findErr)
	}

	if existing.SellerID != user.ID {
		return nil, domain.ErrNotAuthorized
	}

	ok, delErr := s.products.Delete(ctx, *existing)
	if delErr != nil {
		return nil, fmt.Errorf("deleting product: %w", delErr)
	}
	if !ok {
		return nil, domain.ErrDeleteFailed
	}
	return existing, nil
}

// GetByID возвращает продукт или ошибку domain.ErrNotFound.
func (s *ProductService) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting product by id: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting all products: %w", err)
	}
	return products, nil
}

// SellAmount списывает amount единиц остатка продукта и возвращает новый остаток.
// Единственная точка мутации стока, вызывается только из сценария покупки.
// Возвращает ошибки domain.ErrNotFound и domain.ErrNotEnoughStock.
func (s *ProductService) SellAmount(ctx context.Context, productID string, amount int) (int, error) {
	product, findErr := s.products.FindByID(ctx, productID)
	if findErr != nil {
		if errors.Is(findErr, storage.ErrRecordNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("selling product: %w", findErr)
	}

	if product.AmountAvailable < amount {
		return 0, domain.ErrNotEnoughStock
	}

	product.AmountAvailable -= amount

	ok, updErr := s.products.Update(ctx, *product)
	if updErr != nil {
		return 0, fmt.Errorf("selling product: %w", updErr)
	}
	if !ok {
		return 0, domain.ErrUpdateFailed
	}
	return product.AmountAvailable, nil
}
