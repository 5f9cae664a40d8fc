package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type creditCardHandler struct {
	cardService portssvc.CreditCardSvcFacade
}

func registerCreditCardRoutes(rg *gin.RouterGroup, cardService portssvc.CreditCardSvcFacade) {
	h := &creditCardHandler{cardService: cardService}

	cards := rg.Group("/credit-cards")
	{
		cards.POST("", h.createCreditCard)
		cards.GET("", h.listCreditCards)
		cards.GET("/:id", h.getCreditCard)
		cards.PUT("/:id", h.updateCreditCard)
		cards.DELETE("/:id", h.deleteCreditCard)
	}
}

// createCreditCard godoc
// @Summary Register a credit card
// @Tags credit-cards
// @Accept  json
// @Produce  json
// @Param   card body dto.CreateCreditCardRequest true "Credit card details"
// @Success 201 {object} dto.CreditCardResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create credit card"
// @Security BearerAuth
// @Router /credit-cards [post]
func (h *creditCardHandler) createCreditCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCreditCardRequest
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.cardService.CreateCreditCard(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "create credit card")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCreditCardResponse(card))
}

// listCreditCards godoc
// @Summary List credit cards
// @Tags credit-cards
// @Produce  json
// @Success 200 {array} dto.CreditCardResponse
// @Failure 500 {object} map[string]string "Failed to list credit cards"
// @Security BearerAuth
// @Router /credit-cards [get]
func (h *creditCardHandler) listCreditCards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cards, err := h.cardService.ListCreditCards(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list credit cards")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCreditCardResponse(cards))
}

// getCreditCard godoc
// @Summary Get a credit card by ID
// @Tags credit-cards
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Success 200 {object} dto.CreditCardResponse
// @Failure 404 {object} map[string]string "Credit card not found"
// @Security BearerAuth
// @Router /credit-cards/{id} [get]
func (h *creditCardHandler) getCreditCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	card, err := h.cardService.GetCreditCardByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve credit card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditCardResponse(card))
}

// updateCreditCard godoc
// @Summary Update a credit card
// @Tags credit-cards
// @Accept  json
// @Produce  json
// @Param   id path string true "Credit card ID"
// @Param   card body dto.UpdateCreditCardRequest true "Fields to update"
// @Success 200 {object} dto.CreditCardResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Credit card not found"
// @Security BearerAuth
// @Router /credit-cards/{id} [put]
func (h *creditCardHandler) updateCreditCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCreditCardRequest
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.cardService.UpdateCreditCard(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "update credit card")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditCardResponse(card))
}

// deleteCreditCard godoc
// @Summary Delete a credit card
// @Tags credit-cards
// @Param   id path string true "Credit card ID"
// @Success 204
// @Failure 404 {object} map[string]string "Credit card not found"
// @Failure 409 {object} map[string]string "Credit card is referenced by transactions"
// @Security BearerAuth
// @Router /credit-cards/{id} [delete]
func (h *creditCardHandler) deleteCreditCard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.cardService.DeleteCreditCard(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "delete credit card")
		return
	}
	c.Status(http.StatusNoContent)
}
