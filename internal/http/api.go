package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finlite/internal/repository"
	"finlite/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	clients    service.ClientService
	accounts   service.AccountService
	categories service.CategoryService
	cards      service.CardService
	tasks      service.TaskService
	reports    service.ReportService
	jwtSecret  []byte
	tokenTTL   time.Duration
	logger     logrus.FieldLogger
}

func NewHandler(
	users service.UserService,
	clients service.ClientService,
	accounts service.AccountService,
	categories service.CategoryService,
	cards service.CardService,
	tasks service.TaskService,
	reports service.ReportService,
	jwtSecret string,
	tokenTTL time.Duration,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		users:      users,
		clients:    clients,
		accounts:   accounts,
		categories: categories,
		cards:      cards,
		tasks:      tasks,
		reports:    reports,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	// every owner-scoped route sits behind the token verifier, no exceptions
	authorized := router.Group("/", h.authRequired())
	{
		authorized.GET("/users/me", h.me)

		authorized.GET("/clients", h.listClients)
		authorized.POST("/clients", h.createClient)
		authorized.PUT("/clients/:id", h.updateClient)
		authorized.DELETE("/clients/:id", h.deleteClient)

		authorized.GET("/accounts", h.listAccounts)
		authorized.POST("/accounts", h.createAccount)
		authorized.PUT("/accounts/:id", h.updateAccount)
		authorized.DELETE("/accounts/:id", h.deleteAccount)
		authorized.PUT("/accounts/pay/:id", h.payAccount)

		authorized.GET("/categories", h.listCategories)
		authorized.POST("/categories", h.createCategory)
		authorized.PUT("/categories/:id", h.updateCategory)
		authorized.DELETE("/categories/:id", h.deleteCategory)

		authorized.GET("/cards", h.listCards)
		authorized.POST("/cards", h.createCard)
		authorized.PUT("/cards/:id", h.updateCard)
		authorized.DELETE("/cards/:id", h.deleteCard)

		authorized.GET("/tasks", h.listTasks)
		authorized.POST("/tasks", h.createTask)
		authorized.PUT("/tasks/:id", h.updateTask)
		authorized.DELETE("/tasks/:id", h.deleteTask)

		authorized.GET("/reports", h.listReports)
		authorized.POST("/reports", h.createReport)
		authorized.DELETE("/reports/:id", h.deleteReport)
		authorized.GET("/reports/archives", h.listReportArchives)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// writeError maps service and repository errors onto the response taxonomy.
// Anything unrecognized is logged server-side and collapsed to a generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrEmailTaken.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, repository.ErrAlreadyPaid):
		c.JSON(http.StatusBadRequest, gin.H{"error": repository.ErrAlreadyPaid.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": repository.ErrNotFound.Error()})
	default:
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseID reads the :id route parameter; on failure it writes a 400 response.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}
