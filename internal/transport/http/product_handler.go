package http

import (
	"net/http"
	"strconv"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
	isDev   bool
}

func NewProductHandler(catalog service.CatalogService, log *zap.Logger, isDev bool) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log, isDev: isDev}
}

type createProductRequest struct {
	VendorID    *uuid.UUID `json:"gie_id"`
	Name        string     `json:"nom" binding:"required"`
	Description string     `json:"description"`
	PriceCfa    int64      `json:"prix_cfa" binding:"required"`
	Stock       int        `json:"stock"`
	IsActive    *bool      `json:"actif"`
}

type updateProductRequest struct {
	Name        *string `json:"nom"`
	Description *string `json:"description"`
	PriceCfa    *int64  `json:"prix_cfa"`
	IsActive    *bool   `json:"actif"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CreateProduct godoc
// @Summary Créer un produit
// @Tags produits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param produit body createProductRequest true "Produit"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /produits [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "requête invalide", err.Error())
		return
	}

	in := service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCfa:    req.PriceCfa,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.VendorID != nil {
		in.VendorID = *req.VendorID
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		if status == http.StatusInternalServerError {
			h.log.Error("create product failed", zap.Error(err))
		}
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusCreated, "produit créé", p)
}

// UpdateProduct godoc
// @Summary Modifier un produit
// @Tags produits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant du produit"
// @Param produit body updateProductRequest true "Champs à modifier"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /produits/{id} [patch]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "requête invalide", err.Error())
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		PriceCfa:    req.PriceCfa,
		IsActive:    req.IsActive,
	})
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "produit mis à jour", p)
}

// GetProduct godoc
// @Summary Consulter un produit
// @Tags produits
// @Produce json
// @Param id path string true "Identifiant du produit"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /produits/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "produit", p)
}

// ListProducts godoc
// @Summary Lister les produits
// @Tags produits
// @Produce json
// @Param gie_id query string false "Filtrer par GIE"
// @Param q query string false "Recherche sur le nom"
// @Param actif query bool false "Uniquement les produits actifs"
// @Param limit query int false "Taille de page"
// @Param offset query int false "Décalage"
// @Success 200 {object} Response
// @Router /produits [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var f service.ProductListFilter
	if v := c.Query("gie_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
			return
		}
		f.VendorID = &id
	}
	f.Query = c.Query("q")
	if v := c.Query("actif"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "requête invalide", err.Error())
			return
		}
		f.OnlyActive = &b
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := h.catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "produits", gin.H{"produits": products, "total": total})
}

// DeleteProduct godoc
// @Summary Supprimer un produit
// @Tags produits
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant du produit"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /produits/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "produit supprimé", nil)
}

// AdjustStock godoc
// @Summary Ajuster le stock d'un produit
// @Description Delta positif pour réapprovisionner, négatif pour corriger. Le stock ne descend jamais sous zéro.
// @Tags produits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant du produit"
// @Param delta body adjustStockRequest true "Variation de stock"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Stock insuffisant"
// @Router /produits/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
		return
	}
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "requête invalide", err.Error())
		return
	}

	p, err := h.catalog.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		if status == http.StatusInternalServerError {
			h.log.Error("stock adjustment failed", zap.String("product_id", id.String()), zap.Error(err))
		}
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "stock ajusté", p)
}
