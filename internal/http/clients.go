package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finlite/internal/domain"
)

type clientRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Type        string `json:"type"`
	CompanyName string `json:"company_name"`
}

type ClientResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Type        string `json:"type"`
	CompanyName string `json:"company_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func clientToResponse(client domain.Client) ClientResponse {
	return ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		Email:       client.Email,
		Phone:       client.Phone,
		Address:     client.Address,
		Type:        client.Type,
		CompanyName: client.CompanyName,
		CreatedAt:   formatTime(client.CreatedAt),
		UpdatedAt:   formatTime(client.UpdatedAt),
	}
}

func (req clientRequest) toDomain(userID int64) *domain.Client {
	return &domain.Client{
		UserID:      userID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Type:        req.Type,
		CompanyName: req.CompanyName,
	}
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ClientResponse, len(clients))
	for i := range clients {
		resp[i] = clientToResponse(clients[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.clients.Create(c.Request.Context(), req.toDomain(currentUserID(c)))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, clientToResponse(*client))
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := req.toDomain(currentUserID(c))
	client.ID = id
	if err := h.clients.Update(c.Request.Context(), client); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client updated"})
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
