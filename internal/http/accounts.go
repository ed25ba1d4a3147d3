package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finlite/internal/domain"
)

type accountRequest struct {
	ClientID    int64    `json:"client_id"`
	CategoryID  int64    `json:"category_id"`
	CardID      *int64   `json:"card_id"`
	Amount      *float64 `json:"amount"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
}

type AccountResponse struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"client_id"`
	CategoryID   int64   `json:"category_id"`
	CardID       *int64  `json:"card_id,omitempty"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	Description  string  `json:"description"`
	CategoryName string  `json:"category_name"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	PaidAt       *string `json:"paid_at,omitempty"`
}

func accountToResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:           account.ID,
		ClientID:     account.ClientID,
		CategoryID:   account.CategoryID,
		CardID:       account.CardID,
		Amount:       account.Amount,
		Status:       string(account.Status),
		Description:  account.Description,
		CategoryName: account.CategoryName,
		CreatedAt:    formatTime(account.CreatedAt),
		UpdatedAt:    formatTime(account.UpdatedAt),
		PaidAt:       formatTimePtr(account.PaidAt),
	}
}

func (req accountRequest) toDomain(userID int64) *domain.Account {
	account := &domain.Account{
		UserID:      userID,
		ClientID:    req.ClientID,
		CategoryID:  req.CategoryID,
		CardID:      req.CardID,
		Status:      domain.AccountStatus(req.Status),
		Description: req.Description,
	}
	if req.Amount != nil {
		account.Amount = *req.Amount
	}
	return account
}

func (h *Handler) listAccounts(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = accountToResponse(accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createAccount(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a number"})
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), req.toDomain(currentUserID(c)))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, accountToResponse(*account))
}

func (h *Handler) updateAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a number"})
		return
	}

	account := req.toDomain(currentUserID(c))
	account.ID = id
	if err := h.accounts.Update(c.Request.Context(), account); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account updated"})
}

func (h *Handler) deleteAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (h *Handler) payAccount(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	account, err := h.accounts.Pay(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "account paid",
		"account": accountToResponse(*account),
	})
}
