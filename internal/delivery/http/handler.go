package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/logger"
	"github.com/ecomart/backend/internal/usecase"
)

const (
	serviceName    = "ecomart-backend"
	serviceVersion = "1.0.0"
)

// Services groups the use cases the HTTP layer dispatches to.
// Any of them may be nil, in which case its endpoints answer 501.
type Services struct {
	Catalog   domain.CatalogProvider
	Search    *usecase.SearchService
	Recommend *usecase.Recommender
	Materials *usecase.MaterialAnalyzer
	Biometric *usecase.BiometricVerifier
	Checkout  *usecase.CheckoutService
	Tracker   *usecase.SustainabilityTracker
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	svc Services
	log *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(svc Services, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: logger.OrNop(log)}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	products := 0
	if h.svc.Catalog != nil {
		products = len(h.svc.Catalog.All())
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  serviceName,
		"version":  serviceVersion,
		"products": products,
	})
}

// ListProducts returns the full catalog
func (h *Handler) ListProducts(c *gin.Context) {
	if h.svc.Catalog == nil {
		notConfigured(c, "catalog")
		return
	}
	products := h.svc.Catalog.All()
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct returns one product by id
func (h *Handler) GetProduct(c *gin.Context) {
	if h.svc.Catalog == nil {
		notConfigured(c, "catalog")
		return
	}
	p, err := h.svc.Catalog.ByID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetAlternatives returns ranked greener substitutes for a product
func (h *Handler) GetAlternatives(c *gin.Context) {
	if h.svc.Recommend == nil {
		notConfigured(c, "recommender")
		return
	}
	result, err := h.svc.Recommend.AlternativesFor(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMaterials returns the material report for a product
func (h *Handler) GetMaterials(c *gin.Context) {
	if h.svc.Materials == nil {
		notConfigured(c, "material analysis")
		return
	}
	analysis, err := h.svc.Materials.AnalyzeByID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Search handles GET /search?q=
func (h *Handler) Search(c *gin.Context) {
	if h.svc.Search == nil {
		notConfigured(c, "search")
		return
	}
	result, err := h.svc.Search.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Suggestions handles GET /search/suggestions?q=
func (h *Handler) Suggestions(c *gin.Context) {
	if h.svc.Search == nil {
		notConfigured(c, "search")
		return
	}
	q := c.Query("q")
	c.JSON(http.StatusOK, gin.H{"query": q, "suggestions": h.svc.Search.Suggest(q)})
}

// SubmitBiometric feeds one typing sample to the verifier. The verifier
// status is returned in every case, with the HTTP status reflecting the outcome.
func (h *Handler) SubmitBiometric(c *gin.Context) {
	if h.svc.Biometric == nil {
		notConfigured(c, "biometric verification")
		return
	}

	var sample domain.BiometricSample
	if err := c.ShouldBindJSON(&sample); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	status, err := h.svc.Biometric.Submit(c.Request.Context(), sample)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "status": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// BiometricStatus returns the verifier state without side effects
func (h *Handler) BiometricStatus(c *gin.Context) {
	if h.svc.Biometric == nil {
		notConfigured(c, "biometric verification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": h.svc.Biometric.Status()})
}

// ResetBiometric returns a finished verifier to enrollment
func (h *Handler) ResetBiometric(c *gin.Context) {
	if h.svc.Biometric == nil {
		notConfigured(c, "biometric verification")
		return
	}
	status, err := h.svc.Biometric.Reset(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "status": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Checkout totals the cart and mints a receipt
func (h *Handler) Checkout(c *gin.Context) {
	if h.svc.Checkout == nil {
		notConfigured(c, "checkout")
		return
	}

	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	receipt, err := h.svc.Checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// GetReceipt looks up a receipt by token id
func (h *Handler) GetReceipt(c *gin.Context) {
	if h.svc.Checkout == nil {
		notConfigured(c, "checkout")
		return
	}
	receipt, err := h.svc.Checkout.VerifyReceipt(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// Sustainability returns the tracker totals and tips for the catalog
func (h *Handler) Sustainability(c *gin.Context) {
	if h.svc.Tracker == nil {
		notConfigured(c, "sustainability tracker")
		return
	}
	stats, err := h.svc.Tracker.Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	var products []domain.Product
	if h.svc.Catalog != nil {
		products = h.svc.Catalog.All()
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "tips": h.svc.Tracker.Tips(products)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrReceiptNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrSampleTooShort):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPatternMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrVerificationLocked):
		return http.StatusLocked
	case errors.Is(err, domain.ErrInvalidPhase):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func notConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": what + " is not configured"})
}
