package service

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/storage/memstore"
)

type VendingServiceTestSuite struct {
	suite.Suite
	users          *memstore.Store[domain.User]
	products       *memstore.Store[domain.Product]
	userService    *UserService
	productService *ProductService
	vending        *VendingService
}

func TestVendingServiceSuite(t *testing.T) {
	suite.Run(t, new(VendingServiceTestSuite))
}

func (s *VendingServiceTestSuite) SetupTest() {
	s.users = memstore.New[domain.User]()
	s.products = memstore.New[domain.Product]()
	s.userService = NewUserService(s.users)
	s.productService = NewProductService(s.products)
	s.vending = NewVendingService(s.userService, s.productService)
}

func (s *VendingServiceTestSuite) seedBuyer(deposit int) domain.User {
	user, err := s.userService.Create(s.T().Context(), domain.User{
		ID:       gofakeit.UUID(),
		Username: gofakeit.Username(),
		Password: "secret",
		Deposit:  deposit,
		Roles:    []domain.Role{domain.RoleBuyer},
	})
	s.Require().NoError(err)
	return *user
}

func (s *VendingServiceTestSuite) seedProduct(cost, amount int) domain.Product {
	seller := domain.User{ID: gofakeit.UUID()}
	product, err := s.productService.Create(s.T().Context(), seller, ProductArgs{
		ID:              gofakeit.UUID(),
		Name:            gofakeit.ProductName(),
		Cost:            &cost,
		AmountAvailable: &amount,
	})
	s.Require().NoError(err)
	return *product
}

func (s *VendingServiceTestSuite) storedDeposit(userID string) int {
	user, err := s.userService.GetByID(s.T().Context(), userID)
	s.Require().NoError(err)
	return user.Deposit
}

func (s *VendingServiceTestSuite) TestBuy() {
	buyer := s.seedBuyer(100)
	product := s.seedProduct(25, 10)

	purchase, err := s.vending.Buy(s.T().Context(), buyer, product.ID, 3)
	s.Require().NoError(err)

	s.Equal(75, purchase.TotalAmountSpent)
	s.Equal(product.ID, purchase.Product.ID)
	s.Equal(7, purchase.Product.AmountAvailable)
	// остаток депозита 25 = одна монета 20 + одна монета 5.
	s.Equal([]domain.Coin{
		{Denomination: 20, Count: 1},
		{Denomination: 5, Count: 1},
	}, purchase.Change)

	s.Equal(25, s.storedDeposit(buyer.ID))
}

func (s *VendingServiceTestSuite) TestBuyProductNotFound() {
	buyer := s.seedBuyer(100)

	_, err := s.vending.Buy(s.T().Context(), buyer, "no-such-id", 1)
	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Equal("Not Found", err.Error())
}

func (s *VendingServiceTestSuite) TestBuyInsufficientFunds() {
	buyer := s.seedBuyer(20)
	product := s.seedProduct(25, 10)

	_, err := s.vending.Buy(s.T().Context(), buyer, product.ID, 1)
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
	s.Equal("Insufficient funds", err.Error())

	// ни депозит, ни сток не изменились.
	s.Equal(20, s.storedDeposit(buyer.ID))
	got, getErr := s.productService.GetByID(s.T().Context(), product.ID)
	s.Require().NoError(getErr)
	s.Equal(10, got.AmountAvailable)
}

// TestBuyNotEnoughStock фиксирует унаследованный нетранзакционный кейс: депозит
// списывается до проверки стока, и при нехватке стока списание не откатывается.
func (s *VendingServiceTestSuite) TestBuyNotEnoughStock() {
	buyer := s.seedBuyer(100)
	product := s.seedProduct(25, 2)

	_, err := s.vending.Buy(s.T().Context(), buyer, product.ID, 3)
	s.Require().ErrorIs(err, domain.ErrNotEnoughStock)

	// депозит уже списан, сток не тронут.
	s.Equal(25, s.storedDeposit(buyer.ID))
	got, getErr := s.productService.GetByID(s.T().Context(), product.ID)
	s.Require().NoError(getErr)
	s.Equal(2, got.AmountAvailable)
}

func (s *VendingServiceTestSuite) TestDeposit() {
	invalid := []int{0, -5, 1, 3, 7, 25, 99, 101, -100}
	for _, amount := range invalid {
		buyer := s.seedBuyer(40)

		_, err := s.vending.Deposit(s.T().Context(), buyer, amount)
		s.Require().ErrorIs(err, domain.ErrInvalidDeposit, "amount %d", amount)
		s.Equal("Invalid deposit", err.Error())
		// хранимый баланс не изменился.
		s.Equal(40, s.storedDeposit(buyer.ID))
	}

	for _, amount := range domain.Denominations {
		buyer := s.seedBuyer(40)

		updated, err := s.vending.Deposit(s.T().Context(), buyer, amount)
		s.Require().NoError(err)
		s.Equal(40+amount, updated.Deposit)
		s.Equal(40+amount, s.storedDeposit(buyer.ID))
	}
}

func (s *VendingServiceTestSuite) TestResetBalance() {
	for _, deposit := range []int{0, 5, 135} {
		buyer := s.seedBuyer(deposit)

		updated, err := s.vending.ResetBalance(s.T().Context(), buyer)
		s.Require().NoError(err)
		s.Equal(0, updated.Deposit)
		s.Equal(0, s.storedDeposit(buyer.ID))
	}
}

func TestMakeChange(t *testing.T) {
	cases := []struct {
		name      string
		remainder int
		want      []domain.Coin
	}{
		{name: "zero", remainder: 0, want: []domain.Coin{}},
		{name: "single smallest", remainder: 5, want: []domain.Coin{{Denomination: 5, Count: 1}}},
		{name: "twenty five", remainder: 25, want: []domain.Coin{
			{Denomination: 20, Count: 1},
			{Denomination: 5, Count: 1},
		}},
		{name: "large", remainder: 285, want: []domain.Coin{
			{Denomination: 100, Count: 2},
			{Denomination: 50, Count: 1},
			{Denomination: 20, Count: 1},
			{Denomination: 10, Count: 1},
			{Denomination: 5, Count: 1},
		}},
		{name: "repeat coin", remainder: 40, want: []domain.Coin{
			{Denomination: 20, Count: 2},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MakeChange(tc.remainder)
			if len(got) != len(tc.want) {
				t.Fatalf("MakeChange(%d) = %v, want %v", tc.remainder, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("MakeChange(%d)[%d] = %v, want %v", tc.remainder, i, got[i], tc.want[i])
				}
			}
		})
	}
}

// TestMakeChangeProperties сумма выданных монет всегда равна остатку, а для канонической
// системы номиналов жадный набор минимален по числу монет.
func TestMakeChangeProperties(t *testing.T) {
	minCoins := func(remainder int) int {
		// минимум монет перебором (динамика по остатку).
		const inf = 1 << 30
		best := make([]int, remainder+1)
		for r := 1; r <= remainder; r++ {
			best[r] = inf
			for _, d := range domain.Denominations {
				if r >= d && best[r-d]+1 < best[r] {
					best[r] = best[r-d] + 1
				}
			}
		}
		return best[remainder]
	}

	for remainder := 0; remainder <= 500; remainder += 5 {
		change := MakeChange(remainder)

		var sum, coins int
		prev := 1 << 30
		for _, coin := range change {
			sum += coin.Denomination * coin.Count
			coins += coin.Count
			if coin.Denomination >= prev {
				t.Fatalf("remainder %d: change not in descending denomination order: %v", remainder, change)
			}
			if coin.Count <= 0 {
				t.Fatalf("remainder %d: non-positive coin count: %v", remainder, change)
			}
			prev = coin.Denomination
		}

		if sum != remainder {
			t.Fatalf("remainder %d: change sums to %d: %v", remainder, sum, change)
		}
		if remainder > 0 && coins != minCoins(remainder) {
			t.Fatalf("remainder %d: greedy used %d coins, optimum is %d", remainder, coins, minCoins(remainder))
		}
	}
}
