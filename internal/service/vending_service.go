package service

import (
	"context"

	"github.com/fsdevblog/groph-vending/internal/domain"
)

// VendingService оркестрирует сценарии покупки, пополнения и сброса депозита поверх
// сервисов юзеров и продуктов. Два агрегата (юзер и продукт) живут без общей транзакции,
// поэтому порядок шагов в Buy несет смысловую нагрузку.
type VendingService struct {
	userService    *UserService
	productService *ProductService
}

func NewVendingService(userService *UserService, productService *ProductService) *VendingService {
	return &VendingService{
		userService:    userService,
		productService: productService,
	}
}

// Buy покупает amount единиц продукта productID за счет депозита юзера.
//
// Шаги, по порядку, каждый - жесткий гейт:
//  1. Резолвим продукт; ошибка сервиса продуктов уходит наверх как есть.
//  2. Проверяем депозит против totalCost; нехватка - domain.ErrInsufficientFunds без мутаций.
//  3. Списываем депозит и персистим юзера.
//  4. Списываем сток через SellAmount. Если стока не хватило, депозит уже списан -
//     унаследованное от исходной системы нетранзакционное поведение, см. DESIGN.md.
//  5. Считаем сдачу жадным алгоритмом от оставшегося депозита.
func (s *VendingService) Buy(
	ctx context.Context,
	user domain.User,
	productID string,
	amount int,
) (*domain.Purchase, error) {
	product, prodErr := s.productService.GetByID(ctx, productID)
	if prodErr != nil {
		return nil, prodErr
	}

	totalCost := product.Cost * amount
	if user.Deposit < totalCost {
		return nil, domain.ErrInsufficientFunds
	}

	user.Deposit -= totalCost
	if _, updErr := s.persistUser(ctx, user); updErr != nil {
		return nil, updErr
	}

	remaining, sellErr := s.productService.SellAmount(ctx, productID, amount)
	if sellErr != nil {
		return nil, sellErr
	}
	product.AmountAvailable = remaining

	return &domain.Purchase{
		Product:          *product,
		TotalAmountSpent: totalCost,
		Change:           MakeChange(user.Deposit),
	}, nil
}

// Deposit пополняет депозит юзера на amount. Годными считаются только канонические
// номиналы монет; на невалидной сумме юзер не читается и не пишется.
func (s *VendingService) Deposit(ctx context.Context, user domain.User, amount int) (*domain.User, error) {
	if !validDenomination(amount) {
		return nil, domain.ErrInvalidDeposit
	}

	user.Deposit += amount
	return s.persistUser(ctx, user)
}

// ResetBalance безусловно обнуляет депозит юзера.
func (s *VendingService) ResetBalance(ctx context.Context, user domain.User) (*domain.User, error) {
	user.Deposit = 0
	return s.persistUser(ctx, user)
}

// persistUser прокидывает новое состояние юзера через сервис юзеров. Ошибка персиста
// уходит наверх без оборачивания - её текст является частью контракта.
func (s *VendingService) persistUser(ctx context.Context, user domain.User) (*domain.User, error) {
	return s.userService.Update(ctx, user.ID, UpdateUserArgs{
		Username: user.Username,
		Deposit:  user.Deposit,
		Roles:    user.Roles,
	})
}

// MakeChange считает сдачу жадным алгоритмом: по номиналам от большего к меньшему.
// Для канонической системы номиналов {5,10,20,50,100} жадный набор минимален по числу
// монет. remainder предполагается кратным 5; иной остаток - нарушенный инвариант депозита.
func MakeChange(remainder int) []domain.Coin {
	change := make([]domain.Coin, 0, len(domain.Denominations))
	for i := len(domain.Denominations) - 1; i >= 0; i-- {
		denomination := domain.Denominations[i]
		if count := remainder / denomination; count > 0 {
			change = append(change, domain.Coin{Denomination: denomination, Count: count})
		}
		remainder %= denomination
	}
	return change
}

func validDenomination(amount int) bool {
	for _, d := range domain.Denominations {
		if amount == d {
			return true
		}
	}
	return false
}
