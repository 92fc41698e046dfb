package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-vending/internal/domain"
)

type VendingHandler struct {
	vendingService VendingServicer
}

func NewVendingHandler(vendingService VendingServicer) *VendingHandler {
	return &VendingHandler{vendingService: vendingService}
}

type DepositParams struct {
	Amount int `form:"amount"`
}

// Deposit POST /api/vending/deposit?amount=. Только для покупателей. Валидацию номинала
// выполняет сервис - сюда долетает и "Invalid deposit".
func (h *VendingHandler) Deposit(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var params DepositParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	updated, err := h.vendingService.Deposit(ctx, *user, params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposit": updated.Deposit})
}

type BuyParams struct {
	ProductID string `binding:"required" form:"productId"`
	Amount    int    `form:"amount"`
}

type CoinResponse struct {
	Denomination int `json:"denomination"`
	Count        int `json:"count"`
}

type PurchaseResponse struct {
	Product          ProductResponse `json:"product"`
	TotalAmountSpent int             `json:"totalAmountSpent"`
	Change           []CoinResponse  `json:"change"`
}

// Buy POST /api/vending/buy?productId=&amount=. Только для покупателей.
func (h *VendingHandler) Buy(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var params BuyParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	purchase, buyErr := h.vendingService.Buy(ctx, *user, params.ProductID, params.Amount)
	if buyErr != nil {
		abortWithServiceError(c, buyErr)
		return
	}

	c.JSON(http.StatusOK, newPurchaseResponse(purchase))
}

// Reset POST /api/vending/reset. Достаточно аутентификации, роль не требуется.
func (h *VendingHandler) Reset(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	updated, err := h.vendingService.ResetBalance(ctx, *user)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposit": updated.Deposit})
}

func newPurchaseResponse(purchase *domain.Purchase) PurchaseResponse {
	change := make([]CoinResponse, len(purchase.Change))
	for i, coin := range purchase.Change {
		change[i] = CoinResponse{Denomination: coin.Denomination, Count: coin.Count}
	}
	return PurchaseResponse{
		Product:          newProductResponse(&purchase.Product),
		TotalAmountSpent: purchase.TotalAmountSpent,
		Change:           change,
	}
}
