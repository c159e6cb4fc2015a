package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"autoparts-service/internal/auth"
	"autoparts-service/internal/models"
	"autoparts-service/internal/service"
	"autoparts-service/internal/store"
	"autoparts-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalogService  *service.CatalogService
	customerService *service.CustomerService
	invoiceService  *service.InvoiceService
	authManager     *auth.Manager
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalogService *service.CatalogService,
	customerService *service.CustomerService,
	invoiceService *service.InvoiceService,
	authManager *auth.Manager,
) *Handler {
	return &Handler{
		catalogService:  catalogService,
		customerService: customerService,
		invoiceService:  invoiceService,
		authManager:     authManager,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/api/v1/auth/login", h.login)

	v1 := router.Group("/api/v1")
	v1.Use(h.authMiddleware())
	{
		v1.GET("/catalog", h.listParts)
		v1.GET("/catalog/search", h.searchParts)
		v1.POST("/catalog", h.createPart)
		v1.PUT("/catalog/:id", h.updatePart)
		v1.DELETE("/catalog/:id", h.deletePart)

		v1.GET("/customers", h.listCustomers)
		v1.GET("/customers/search", h.searchCustomers)
		v1.POST("/customers", h.createCustomer)
		v1.PUT("/customers/:id", h.updateCustomer)
		v1.DELETE("/customers/:id", h.deleteCustomer)

		v1.POST("/invoices", h.createInvoice)
		v1.GET("/invoices", h.listInvoices)
		v1.GET("/invoices/:id", h.getInvoice)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login issues an access token for valid staff credentials
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.authManager.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		util.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	util.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

// authMiddleware requires a valid bearer token on protected routes
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		actor, err := h.authManager.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("actor", actor)
		c.Next()
	}
}

// listParts returns the full catalog
func (h *Handler) listParts(c *gin.Context) {
	parts, err := h.catalogService.ListParts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to load catalog",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, parts)
}

// searchParts returns parts matching the q parameter
func (h *Handler) searchParts(c *gin.Context) {
	parts, err := h.catalogService.SearchParts(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to search catalog",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, parts)
}

// createPart handles catalog additions
func (h *Handler) createPart(c *gin.Context) {
	var part models.Part
	if err := c.ShouldBindJSON(&part); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := validatePart(&part); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.CreatePart(c.Request.Context(), &part); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create part",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, part)
}

// updatePart handles catalog edits
func (h *Handler) updatePart(c *gin.Context) {
	var part models.Part
	if err := c.ShouldBindJSON(&part); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	part.ID = c.Param("id")

	if err := validatePart(&part); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.UpdatePart(c.Request.Context(), &part); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update part",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, part)
}

// deletePart handles catalog removals
func (h *Handler) deletePart(c *gin.Context) {
	if err := h.catalogService.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete part",
			"details": err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// listCustomers returns all customers
func (h *Handler) listCustomers(c *gin.Context) {
	list, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to load customers",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, list)
}

// searchCustomers returns customers matching the q parameter
func (h *Handler) searchCustomers(c *gin.Context) {
	list, err := h.customerService.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to search customers",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, list)
}

// createCustomer handles customer additions
func (h *Handler) createCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := validateCustomer(&customer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.customerService.CreateCustomer(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create customer",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// updateCustomer handles customer edits
func (h *Handler) updateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	customer.ID = c.Param("id")

	if err := validateCustomer(&customer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.customerService.UpdateCustomer(c.Request.Context(), &customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update customer",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// deleteCustomer handles customer removals
func (h *Handler) deleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete customer",
			"details": err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// createInvoice handles invoice submission
func (h *Handler) createInvoice(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create invoice",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// listInvoices returns recent invoices, newest first
func (h *Handler) listInvoices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list invoices",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// getInvoice returns an invoice with its line items
func (h *Handler) getInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load invoice",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
