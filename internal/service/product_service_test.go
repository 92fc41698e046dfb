package service

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/storage/memstore"
)

func intPtr(v int) *int { return &v }

type ProductServiceTestSuite struct {
	suite.Suite
	products       *memstore.Store[domain.Product]
	productService *ProductService
	seller         domain.User
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.products = memstore.New[domain.Product]()
	s.productService = NewProductService(s.products)
	s.seller = domain.User{
		ID:       gofakeit.UUID(),
		Username: gofakeit.Username(),
		Roles:    []domain.Role{domain.RoleSeller},
	}
}

func (s *ProductServiceTestSuite) seedProduct(cost, amount int) domain.Product {
	created, err := s.productService.Create(s.T().Context(), s.seller, ProductArgs{
		ID:              gofakeit.UUID(),
		Name:            gofakeit.ProductName(),
		Cost:            &cost,
		AmountAvailable: &amount,
	})
	s.Require().NoError(err)
	return *created
}

func (s *ProductServiceTestSuite) TestCreateValidation() {
	cases := []struct {
		name    string
		args    ProductArgs
		wantErr error
	}{
		{
			name:    "cost not multiple of five",
			args:    ProductArgs{ID: "p1", Name: "cola", Cost: intPtr(7), AmountAvailable: intPtr(1)},
			wantErr: domain.ErrInvalidCost,
		},
		{
			name:    "nil cost",
			args:    ProductArgs{ID: "p2", Name: "cola", AmountAvailable: intPtr(1)},
			wantErr: domain.ErrInvalidCost,
		},
		{
			name:    "zero cost",
			args:    ProductArgs{ID: "p3", Name: "cola", Cost: intPtr(0), AmountAvailable: intPtr(1)},
			wantErr: domain.ErrInvalidCost,
		},
		{
			name:    "negative amount",
			args:    ProductArgs{ID: "p4", Name: "cola", Cost: intPtr(5), AmountAvailable: intPtr(-1)},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "nil amount",
			args:    ProductArgs{ID: "p5", Name: "cola", Cost: intPtr(5)},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "ok",
			args: ProductArgs{ID: "p6", Name: "cola", Cost: intPtr(25), AmountAvailable: intPtr(0)},
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			product, err := s.productService.Create(s.T().Context(), s.seller, t.args)
			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal(s.seller.ID, product.SellerID)
		})
	}
}

func (s *ProductServiceTestSuite) TestCreateForcesSellerID() {
	product := s.seedProduct(15, 3)
	// SellerID берется из юзера-создателя, что бы ни пришло снаружи.
	s.Equal(s.seller.ID, product.SellerID)

	_, dupErr := s.productService.Create(s.T().Context(), s.seller, ProductArgs{
		ID:              product.ID,
		Name:            "other",
		Cost:            intPtr(5),
		AmountAvailable: intPtr(1),
	})
	s.Require().ErrorIs(dupErr, domain.ErrExists)
}

func (s *ProductServiceTestSuite) TestUpdateOwnership() {
	product := s.seedProduct(15, 3)
	stranger := domain.User{ID: gofakeit.UUID(), Roles: []domain.Role{domain.RoleSeller}}

	_, err := s.productService.Update(s.T().Context(), stranger, product.ID, ProductArgs{
		Name:            "hijacked",
		Cost:            intPtr(5),
		AmountAvailable: intPtr(1),
	})
	s.Require().ErrorIs(err, domain.ErrNotAuthorized)
	s.Equal("Not Authorized", err.Error())

	updated, ownErr := s.productService.Update(s.T().Context(), s.seller, product.ID, ProductArgs{
		Name:            "renamed",
		Cost:            intPtr(20),
		AmountAvailable: intPtr(7),
	})
	s.Require().NoError(ownErr)
	s.Equal("renamed", updated.Name)
	s.Equal(20, updated.Cost)
	s.Equal(7, updated.AmountAvailable)
	// ID и SellerID после создания неизменяемы.
	s.Equal(product.ID, updated.ID)
	s.Equal(product.SellerID, updated.SellerID)
}

func (s *ProductServiceTestSuite) TestUpdateValidation() {
	product := s.seedProduct(15, 3)

	_, err := s.productService.Update(s.T().Context(), s.seller, product.ID, ProductArgs{
		Name: "bad",
		Cost: intPtr(13), AmountAvailable: intPtr(1),
	})
	s.Require().ErrorIs(err, domain.ErrInvalidCost)

	_, missErr := s.productService.Update(s.T().Context(), s.seller, "no-such-id", ProductArgs{
		Name: "x", Cost: intPtr(5), AmountAvailable: intPtr(1),
	})
	s.Require().ErrorIs(missErr, domain.ErrNotFound)
}

func (s *ProductServiceTestSuite) TestDelete() {
	product := s.seedProduct(15, 3)
	stranger := domain.User{ID: gofakeit.UUID()}

	_, strangerErr := s.productService.Delete(s.T().Context(), stranger, product.ID)
	s.Require().ErrorIs(strangerErr, domain.ErrNotAuthorized)

	deleted, err := s.productService.Delete(s.T().Context(), s.seller, product.ID)
	s.Require().NoError(err)
	s.Equal(product.ID, deleted.ID)

	_, missErr := s.productService.Delete(s.T().Context(), s.seller, product.ID)
	s.Require().ErrorIs(missErr, domain.ErrNotFound)
}

func (s *ProductServiceTestSuite) TestSellAmount() {
	product := s.seedProduct(15, 3)

	remaining, err := s.productService.SellAmount(s.T().Context(), product.ID, 2)
	s.Require().NoError(err)
	s.Equal(1, remaining)

	_, stockErr := s.productService.SellAmount(s.T().Context(), product.ID, 2)
	s.Require().ErrorIs(stockErr, domain.ErrNotEnoughStock)
	s.Equal("Not enough stock", stockErr.Error())

	// неудачная продажа не трогает остаток.
	got, getErr := s.productService.GetByID(s.T().Context(), product.ID)
	s.Require().NoError(getErr)
	s.Equal(1, got.AmountAvailable)

	_, missErr := s.productService.SellAmount(s.T().Context(), "no-such-id", 1)
	s.Require().ErrorIs(missErr, domain.ErrNotFound)
}
