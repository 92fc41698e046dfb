package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/service"
)

type ProductsHandler struct {
	productService ProductServicer
}

func NewProductsHandler(productService ProductServicer) *ProductsHandler {
	return &ProductsHandler{productService: productService}
}

type ProductResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Cost            int    `json:"cost"`
	AmountAvailable int    `json:"amountAvailable"`
	SellerID        string `json:"sellerId"`
}

func newProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Cost:            product.Cost,
		AmountAvailable: product.AmountAvailable,
		SellerID:        product.SellerID,
	}
}

type ProductCreateParams struct {
	ID              string `binding:"required,min=1,max=64" json:"id"`
	Name            string `binding:"required,min=1,max=64" json:"name"`
	Cost            *int   `json:"cost"`
	AmountAvailable *int   `json:"amountAvailable"`
}

// Create POST /api/product. Доступно только продавцам; SellerID проставляет сервис.
func (h *ProductsHandler) Create(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var params ProductCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, createErr := h.productService.Create(ctx, *user, service.ProductArgs{
		ID:              params.ID,
		Name:            params.Name,
		Cost:            params.Cost,
		AmountAvailable: params.AmountAvailable,
	})
	if createErr != nil {
		abortWithServiceError(c, createErr)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(product))
}

type ProductUpdateParams struct {
	Name            string `binding:"required,min=1,max=64" json:"name"`
	Cost            *int   `json:"cost"`
	AmountAvailable *int   `json:"amountAvailable"`
}

// Update PUT /api/product/:id. Обновить продукт может только его продавец.
func (h *ProductsHandler) Update(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var params ProductUpdateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, updErr := h.productService.Update(ctx, *user, c.Param("id"), service.ProductArgs{
		Name:            params.Name,
		Cost:            params.Cost,
		AmountAvailable: params.AmountAvailable,
	})
	if updErr != nil {
		abortWithServiceError(c, updErr)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(product))
}

// Delete DELETE /api/product/:id. Удалить продукт может только его продавец.
func (h *ProductsHandler) Delete(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if _, err := h.productService.Delete(ctx, *user, c.Param("id")); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusOK)
}

// Show GET /api/product/:id.
func (h *ProductsHandler) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	product, err := h.productService.GetByID(ctx, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(product))
}

// Index GET /api/product.
func (h *ProductsHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	products, err := h.productService.GetAll(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i := range products {
		response[i] = newProductResponse(&products[i])
	}
	c.JSON(http.StatusOK, response)
}
