package http

import (
	"net/http"
	"strconv"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders    service.OrderService
	lifecycle service.LifecycleService
	log       *zap.Logger
	isDev     bool
}

func NewOrderHandler(orders service.OrderService, lifecycle service.LifecycleService, log *zap.Logger, isDev bool) *OrderHandler {
	return &OrderHandler{orders: orders, lifecycle: lifecycle, log: log, isDev: isDev}
}

type placeOrderItemRequest struct {
	ProductID uuid.UUID `json:"produit_id" binding:"required"`
	Quantity  int       `json:"quantite" binding:"required"`
}

type placeOrderRequest struct {
	Items            []placeOrderItemRequest `json:"articles" binding:"required"`
	DeliveryAddress  string                  `json:"adresse_livraison" binding:"required"`
	ContactPhone     string                  `json:"telephone" binding:"required"`
	PaymentMethod    string                  `json:"methode_paiement"`
	PaymentReference string                  `json:"reference_paiement"`
}

type updateOrderStatusRequest struct {
	Status string  `json:"statut" binding:"required"`
	Reason *string `json:"motif"`
}

type cancelItemRequest struct {
	Reason *string `json:"motif"`
}

// PlaceOrder godoc
// @Summary Passer une commande
// @Description Crée une commande multi-GIE, décrémente les stocks et enregistre le paiement éventuel
// @Tags commandes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commande body placeOrderRequest true "Contenu de la commande"
// @Success 201 {object} Response
// @Failure 400 {object} Response "Stock insuffisant ou requête invalide"
// @Failure 401 {object} Response
// @Router /commandes [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid place order request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "requête invalide", err.Error())
		return
	}

	in := service.PlaceOrderInput{
		DeliveryAddress:  req.DeliveryAddress,
		ContactPhone:     req.ContactPhone,
		PaymentReference: req.PaymentReference,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.LineItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if req.PaymentMethod != "" {
		m := models.PaymentMethod(req.PaymentMethod)
		in.PaymentMethod = &m
	}

	ord, err := h.orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		if status == http.StatusInternalServerError {
			h.log.Error("place order failed", zap.Error(err))
		}
		respondError(c, status, msg, detail)
		return
	}

	h.log.Info("order placed",
		zap.String("order_id", ord.ID.String()),
		zap.String("number", ord.Number),
		zap.Int64("amount_cfa", ord.AmountCfa),
	)
	respondOK(c, http.StatusCreated, "commande enregistrée", ord)
}

// GetOrder godoc
// @Summary Consulter une commande
// @Tags commandes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant de la commande"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /commandes/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
		return
	}

	ord, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "commande", ord)
}

// ListOrders godoc
// @Summary Lister les commandes
// @Description Un client ne voit que ses propres commandes; un admin voit tout
// @Tags commandes
// @Produce json
// @Security BearerAuth
// @Param statut query string false "Filtrer par statut"
// @Param limit query int false "Taille de page (20 par défaut)"
// @Param offset query int false "Décalage"
// @Success 200 {object} Response
// @Router /commandes [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var f service.OrderListFilter
	if s := c.Query("statut"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}
	if cid := c.Query("client_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
			return
		}
		f.ClientID = &id
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "commandes", gin.H{"commandes": orders, "total": total})
}

// UpdateOrderStatus godoc
// @Summary Changer le statut d'une commande
// @Description Confirme, livre ou annule une commande entière. L'annulation rembourse le paiement validé.
// @Tags commandes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant de la commande"
// @Param statut body updateOrderStatusRequest true "Nouveau statut"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Transition interdite"
// @Failure 404 {object} Response
// @Router /commandes/{id}/statut [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
		return
	}
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "requête invalide", err.Error())
		return
	}

	res, err := h.lifecycle.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status), req.Reason)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		if status == http.StatusInternalServerError {
			h.log.Error("order status update failed", zap.String("order_id", id.String()), zap.Error(err))
		}
		respondError(c, status, msg, detail)
		return
	}

	data := gin.H{"commande": res.Order}
	if res.Refunded {
		data["rembourse_cfa"] = res.RefundedCfa
	}
	respondOK(c, http.StatusOK, "statut mis à jour", data)
}

// MarkItemPreparing godoc
// @Summary Passer une ligne en préparation
// @Tags commandes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant de la ligne"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /commandes/produit/{id}/en-preparation [patch]
func (h *OrderHandler) MarkItemPreparing(c *gin.Context) {
	h.transitionItem(c, func(id uuid.UUID) (*models.OrderItem, error) {
		return h.lifecycle.MarkItemPreparing(c.Request.Context(), id)
	}, "ligne en préparation")
}

// MarkItemReady godoc
// @Summary Marquer une ligne comme prête
// @Description Quand toutes les lignes actives sont prêtes, le client est notifié
// @Tags commandes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant de la ligne"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /commandes/produit/{id}/pret [patch]
func (h *OrderHandler) MarkItemReady(c *gin.Context) {
	h.transitionItem(c, func(id uuid.UUID) (*models.OrderItem, error) {
		return h.lifecycle.MarkItemReady(c.Request.Context(), id)
	}, "ligne prête")
}

// CancelItem godoc
// @Summary Annuler une ligne de commande
// @Tags commandes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Identifiant de la ligne"
// @Param motif body cancelItemRequest false "Motif d'annulation"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /commandes/produit/{id}/annuler [patch]
func (h *OrderHandler) CancelItem(c *gin.Context) {
	var req cancelItemRequest
	// body is optional here
	_ = c.ShouldBindJSON(&req)
	h.transitionItem(c, func(id uuid.UUID) (*models.OrderItem, error) {
		return h.lifecycle.CancelItem(c.Request.Context(), id, req.Reason)
	}, "ligne annulée")
}

func (h *OrderHandler) transitionItem(c *gin.Context, fn func(uuid.UUID) (*models.OrderItem, error), message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "identifiant invalide", err.Error())
		return
	}
	item, err := fn(id)
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		if status == http.StatusInternalServerError {
			h.log.Error("item transition failed", zap.String("item_id", id.String()), zap.Error(err))
		}
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, message, item)
}

// VendorStats godoc
// @Summary Statistiques du GIE connecté
// @Description Nombre de commandes touchées, chiffre d'affaires reconnu, meilleures ventes et lignes par statut
// @Tags commandes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /commandes/stats-gie [get]
func (h *OrderHandler) VendorStats(c *gin.Context) {
	stats, err := h.lifecycle.VendorStats(c.Request.Context())
	if err != nil {
		status, msg, detail := statusForError(err, h.isDev)
		if status == http.StatusInternalServerError {
			h.log.Error("vendor stats failed", zap.Error(err))
		}
		respondError(c, status, msg, detail)
		return
	}
	respondOK(c, http.StatusOK, "statistiques", stats)
}
