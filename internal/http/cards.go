package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finlite/internal/domain"
)

type cardRequest struct {
	CardNumber     string  `json:"card_number"`
	CardHolderName string  `json:"card_holder_name"`
	ExpirationDate string  `json:"expiration_date"`
	CVV            string  `json:"cvv"`
	Balance        float64 `json:"balance"`
}

type cardBalanceRequest struct {
	Balance *float64 `json:"balance"`
}

type CardResponse struct {
	ID             int64   `json:"id"`
	CardNumber     string  `json:"card_number"`
	CardHolderName string  `json:"card_holder_name"`
	ExpirationDate string  `json:"expiration_date"`
	Balance        float64 `json:"balance"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// cardToResponse deliberately omits the CVV.
func cardToResponse(card domain.Card) CardResponse {
	return CardResponse{
		ID:             card.ID,
		CardNumber:     card.CardNumber,
		CardHolderName: card.CardHolderName,
		ExpirationDate: card.ExpirationDate,
		Balance:        card.Balance,
		CreatedAt:      formatTime(card.CreatedAt),
		UpdatedAt:      formatTime(card.UpdatedAt),
	}
}

func (h *Handler) listCards(c *gin.Context) {
	cards, err := h.cards.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]CardResponse, len(cards))
	for i := range cards {
		resp[i] = cardToResponse(cards[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCard(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.cards.Create(c.Request.Context(), &domain.Card{
		UserID:         currentUserID(c),
		CardNumber:     req.CardNumber,
		CardHolderName: req.CardHolderName,
		ExpirationDate: req.ExpirationDate,
		CVV:            req.CVV,
		Balance:        req.Balance,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cardToResponse(*card))
}

func (h *Handler) updateCard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req cardBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Balance == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "balance is required"})
		return
	}

	if err := h.cards.UpdateBalance(c.Request.Context(), id, currentUserID(c), *req.Balance); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "card updated"})
}

func (h *Handler) deleteCard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.cards.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "card deleted"})
}
