package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"greenery/internal/catalog"
	"greenery/internal/database"
	"greenery/internal/logger"
	"greenery/internal/models"

	"github.com/gin-gonic/gin"
)

func handleListRawProducts(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	products, err := database.GetRawProducts(db, userID)
	if err != nil {
		logger.Error("Failed to list raw products", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

type rawProductRequest struct {
	ProductType   string    `json:"product_type"`
	StrainName    string    `json:"strain_name"`
	Source        *string   `json:"source"`
	QualityNotes  string    `json:"quality_notes"`
	THCContent    *float64  `json:"thc_content"`
	CBDContent    *float64  `json:"cbd_content"`
	CurrentAmount float64   `json:"current_amount"`
	Cost          *float64  `json:"cost"`
	PurchaseDate  time.Time `json:"purchase_date"`
}

func (r *rawProductRequest) validate() (string, bool) {
	if r.StrainName == "" {
		return "Strain name is required", false
	}
	if !catalog.KnownRawProductType(r.ProductType) {
		return "Unknown product type", false
	}
	if r.CurrentAmount <= 0 {
		return "Amount must be positive", false
	}
	if r.THCContent != nil && (*r.THCContent < 0 || *r.THCContent > 100) {
		return "THC content must be between 0 and 100", false
	}
	if r.Cost != nil && *r.Cost < 0 {
		return "Cost cannot be negative", false
	}
	return "", true
}

func handleCreateRawProduct(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req rawProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	product, err := database.CreateRawProduct(db, userID, models.RawProduct{
		ProductType:   req.ProductType,
		StrainName:    req.StrainName,
		Source:        req.Source,
		QualityNotes:  req.QualityNotes,
		THCContent:    req.THCContent,
		CBDContent:    req.CBDContent,
		CurrentAmount: req.CurrentAmount,
		Cost:          req.Cost,
		PurchaseDate:  req.PurchaseDate,
	})
	if err != nil {
		logger.Error("Failed to create raw product", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	// A purchase changes this month's spending, so budget thresholds are
	// re-checked here.
	checkBudgetAlerts(c, db, userID)

	c.JSON(http.StatusCreated, product)
}

func handleUpdateRawProduct(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	productID := c.Param("id")

	var req rawProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	product := models.RawProduct{
		ID:            productID,
		ProductType:   req.ProductType,
		StrainName:    req.StrainName,
		Source:        req.Source,
		QualityNotes:  req.QualityNotes,
		THCContent:    req.THCContent,
		CBDContent:    req.CBDContent,
		CurrentAmount: req.CurrentAmount,
		Cost:          req.Cost,
		PurchaseDate:  req.PurchaseDate,
	}

	if err := database.UpdateRawProduct(db, userID, product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func handleDeleteRawProduct(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	productID := c.Param("id")

	if err := database.DeleteRawProduct(db, userID, productID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

type convertRequest struct {
	ConsumableType string   `json:"consumable_type"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	GramsPerUnit   float64  `json:"grams_per_unit"`
	CostPerUnit    *float64 `json:"cost_per_unit"`
	GramsUsed      float64  `json:"grams_used"`
	Notes          string   `json:"notes"`
}

func handleConvertToConsumable(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	productID := c.Param("id")

	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}
	if req.GramsUsed <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grams used must be positive"})
		return
	}

	consumable, err := database.ConvertToConsumable(db, userID, productID, models.Consumable{
		ConsumableType: req.ConsumableType,
		Name:           req.Name,
		Quantity:       req.Quantity,
		GramsPerUnit:   req.GramsPerUnit,
		CostPerUnit:    req.CostPerUnit,
		Notes:          req.Notes,
	}, req.GramsUsed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Converted raw product", "user_id", userID, "product_id", productID, "consumable_id", consumable.ID)
	c.JSON(http.StatusCreated, consumable)
}

func handleListConsumables(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	consumables, err := database.GetConsumables(db, userID)
	if err != nil {
		logger.Error("Failed to list consumables", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load consumables"})
		return
	}

	c.JSON(http.StatusOK, consumables)
}

type consumableRequest struct {
	ConsumableType string   `json:"consumable_type"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	GramsPerUnit   float64  `json:"grams_per_unit"`
	CostPerUnit    *float64 `json:"cost_per_unit"`
	SourceStrain   *string  `json:"source_strain"`
	THCContent     *float64 `json:"thc_content"`
	Notes          string   `json:"notes"`
}

func (r *consumableRequest) validate() (string, bool) {
	if r.Name == "" {
		return "Name is required", false
	}
	if r.Quantity < 0 {
		return "Quantity cannot be negative", false
	}
	if r.GramsPerUnit <= 0 {
		r.GramsPerUnit = catalog.ConsumableDefaultWeight(r.ConsumableType)
	}
	return "", true
}

func handleCreateConsumable(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req consumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	consumable, err := database.CreateConsumable(db, userID, models.Consumable{
		ConsumableType: req.ConsumableType,
		Name:           req.Name,
		Quantity:       req.Quantity,
		GramsPerUnit:   req.GramsPerUnit,
		CostPerUnit:    req.CostPerUnit,
		SourceStrain:   req.SourceStrain,
		THCContent:     req.THCContent,
		Notes:          req.Notes,
	})
	if err != nil {
		logger.Error("Failed to create consumable", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create consumable"})
		return
	}

	c.JSON(http.StatusCreated, consumable)
}

func handleUpdateConsumable(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	consumableID := c.Param("id")

	var req consumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	consumable := models.Consumable{
		ID:             consumableID,
		ConsumableType: req.ConsumableType,
		Name:           req.Name,
		Quantity:       req.Quantity,
		GramsPerUnit:   req.GramsPerUnit,
		CostPerUnit:    req.CostPerUnit,
		Notes:          req.Notes,
	}

	if err := database.UpdateConsumable(db, userID, consumable); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consumable not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consumable updated"})
}

func handleDeleteConsumable(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	consumableID := c.Param("id")

	if err := database.DeleteConsumable(db, userID, consumableID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consumable not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consumable deleted"})
}
