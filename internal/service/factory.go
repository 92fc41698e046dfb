package service

import (
	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/storage"
)

type AppServices struct {
	UserService    *UserService
	ProductService *ProductService
	VendingService *VendingService
}

func Factory(users storage.Store[domain.User], products storage.Store[domain.Product]) *AppServices {
	userService := NewUserService(users)
	productService := NewProductService(products)

	return &AppServices{
		UserService:    userService,
		ProductService: productService,
		VendingService: NewVendingService(userService, productService),
	}
}
