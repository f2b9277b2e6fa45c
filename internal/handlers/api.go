package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Maitreya04/greendotv3/internal/diet"
	"github.com/Maitreya04/greendotv3/internal/models"
	"github.com/Maitreya04/greendotv3/internal/services"
	"github.com/Maitreya04/greendotv3/internal/storage"
	"github.com/gin-gonic/gin"
)

// APIHandler handles all API requests
type APIHandler struct {
	classifier  *diet.Engine
	suggestions *services.SuggestionService
	catalog     services.Catalog
	history     *storage.HistoryStore
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(classifier *diet.Engine, suggestions *services.SuggestionService, catalog services.Catalog, history *storage.HistoryStore) *APIHandler {
	return &APIHandler{
		classifier:  classifier,
		suggestions: suggestions,
		catalog:     catalog,
		history:     history,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/classify", h.Classify)
		api.GET("/product/:code", h.GetProduct)
		api.GET("/alternatives/:code", h.GetAlternatives)
		api.GET("/history", h.GetHistory)
	}
}

// Health reports service liveness
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ClassifyRequest is the payload for POST /api/classify. Code and product
// name are optional; when a code is present the scan is recorded in history.
type ClassifyRequest struct {
	IngredientsText string `json:"ingredients_text"`
	Diet            string `json:"diet" binding:"required"`
	Code            string `json:"code"`
	ProductName     string `json:"product_name"`
}

// Classify runs the classification engine over submitted ingredient text
func (h *APIHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	mode, ok := models.ParseDietMode(req.Diet)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid diet mode"})
		return
	}

	result := h.classifier.Classify(req.IngredientsText, mode)

	if req.Code != "" && h.history != nil {
		scan := &storage.Scan{
			Code:       req.Code,
			Name:       req.ProductName,
			Diet:       string(mode),
			Verdict:    string(result.Verdict),
			Confidence: result.Confidence,
		}
		if err := h.history.SaveScan(scan); err != nil {
			log.Printf("Warning: failed to record scan for %s: %v", req.Code, err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetProduct proxies a catalog lookup by barcode
func (h *APIHandler) GetProduct(c *gin.Context) {
	code := c.Param("code")

	product, err := h.catalog.ProductByCode(c.Request.Context(), code)
	if err != nil {
		log.Printf("Error looking up product %s: %v", code, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product lookup failed"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetAlternatives ranks better-fitting alternatives for a scanned product
func (h *APIHandler) GetAlternatives(c *gin.Context) {
	code := c.Param("code")

	mode, ok := models.ParseDietMode(c.DefaultQuery("diet", string(models.DietVegetarian)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid diet mode"})
		return
	}

	prefs := models.SuggestionPrefs{
		Diet:           mode,
		AvoidAllergens: splitParam(c.Query("avoid")),
		PalmOilFree:    c.Query("palm_oil_free") == "true",
		RequiredLabels: splitParam(c.Query("labels")),
		Country:        c.Query("country"),
		Sort:           models.SortMode(c.DefaultQuery("sort", string(models.SortBalanced))),
	}
	if limitParam := c.Query("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil && limit > 0 {
			prefs.Limit = limit
		}
	}

	baseline := models.Baseline{Code: code}
	suggestions := h.suggestions.RankAlternatives(c.Request.Context(), baseline, prefs)

	c.JSON(http.StatusOK, gin.H{
		"code":        code,
		"diet":        mode,
		"sort":        prefs.Sort,
		"count":       len(suggestions),
		"suggestions": suggestions,
	})
}

// GetHistory lists recent scans, newest first
func (h *APIHandler) GetHistory(c *gin.Context) {
	limit := 50
	if limitParam := c.Query("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	scans, err := h.history.ListScans(limit)
	if err != nil {
		log.Printf("Error listing scan history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}
	if scans == nil {
		scans = []storage.Scan{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(scans),
		"scans": scans,
	})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
