package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ramaseck1/njabatechBack-sub000/internal/models"
	"github.com/Ramaseck1/njabatechBack-sub000/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher is the external notification collaborator. Implementations
// return an error on delivery failure and must not panic; the notifier
// treats every failure as logged-and-ignored.
type Dispatcher interface {
	Send(ctx context.Context, destination, subject, body string) error
}

type Service struct {
	repo       *repository.Repository
	dispatcher Dispatcher
	log        *zap.Logger
}

func New(repo *repository.Repository, dispatcher Dispatcher, log *zap.Logger) *Service {
	return &Service{repo: repo, dispatcher: dispatcher, log: log}
}

type vendorGroup struct {
	name        string
	destination string
	items       []repository.ItemWithVendorContact
	subtotal    int64
}

// NotifyVendorsOfNewOrder groups the order's line items by owning vendor and
// dispatches one notification per vendor. Dispatches are isolated: one
// vendor's failure never blocks the others.
func (s *Service) NotifyVendorsOfNewOrder(ctx context.Context, orderID uuid.UUID) error {
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return fmt.Errorf("order not found: %s", orderID)
	}

	rows, err := s.repo.OrderItems.ListByOrderWithVendor(ctx, orderID)
	if err != nil {
		return err
	}

	groups := make(map[uuid.UUID]*vendorGroup)
	vendorIDs := make([]uuid.UUID, 0)
	for _, row := range rows {
		g, ok := groups[row.VendorID]
		if !ok {
			g = &vendorGroup{name: row.VendorName, destination: row.VendorEmail}
			groups[row.VendorID] = g
			vendorIDs = append(vendorIDs, row.VendorID)
		}
		g.items = append(g.items, row)
		g.subtotal += row.LineTotalCfa
	}

	for _, vid := range vendorIDs {
		g := groups[vid]
		subject := fmt.Sprintf("Nouvelle commande %s", ord.Number)
		body := renderVendorBody(ord, g)
		if err := s.dispatcher.Send(ctx, g.destination, subject, body); err != nil {
			s.log.Warn("vendor notification dispatch failed",
				zap.String("order_id", orderID.String()),
				zap.String("vendor_id", vid.String()),
				zap.Error(err),
			)
			continue
		}
		s.log.Info("vendor notified of new order",
			zap.String("order_id", orderID.String()),
			zap.String("vendor_id", vid.String()),
			zap.Int("items", len(g.items)),
		)
	}
	return nil
}

func renderVendorBody(ord *models.Order, g *vendorGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\nVous avez reçu une nouvelle commande (%s) :\n", g.name, ord.Number)
	for _, it := range g.items {
		fmt.Fprintf(&b, "- %d x %s @ %d FCFA = %d FCFA\n",
			it.Quantity, it.ProductName, it.UnitPriceCfa, it.LineTotalCfa)
	}
	fmt.Fprintf(&b, "\nSous-total: %d FCFA\nAdresse de livraison: %s\n", g.subtotal, ord.DeliveryAddress)
	return b.String()
}

// NotifyClientWhenAllReady dispatches a single "order ready" notification to
// the client, but only when every non-cancelled line item is READY. The full
// condition is re-evaluated from current state on every call rather than
// counted, so concurrent READY transitions can at worst produce a redundant
// send, never a wrong one.
func (s *Service) NotifyClientWhenAllReady(ctx context.Context, orderID uuid.UUID) error {
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return fmt.Errorf("order not found: %s", orderID)
	}

	items, err := s.repo.OrderItems.ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	ready := 0
	for _, it := range items {
		switch it.VendorStatus {
		case models.ItemStatusReady:
			ready++
		case models.ItemStatusCancelled:
			// cancelled items no longer block readiness
		default:
			return nil
		}
	}
	if ready == 0 {
		return nil
	}

	subject := fmt.Sprintf("Commande %s prête", ord.Number)
	body := fmt.Sprintf("Votre commande %s est prête. Elle sera livrée à : %s.", ord.Number, ord.DeliveryAddress)
	if err := s.dispatcher.Send(ctx, ord.ContactPhone, subject, body); err != nil {
		s.log.Warn("client ready notification dispatch failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return nil
	}
	s.log.Info("client notified order ready", zap.String("order_id", orderID.String()))
	return nil
}

// NotifyClientItemCancelled tells the client which product was cancelled and
// why. Billing is unaffected; only fulfilment changes.
func (s *Service) NotifyClientItemCancelled(ctx context.Context, orderID, itemID uuid.UUID, productName, reason string) error {
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return fmt.Errorf("order not found: %s", orderID)
	}

	subject := fmt.Sprintf("Article annulé — commande %s", ord.Number)
	body := fmt.Sprintf("L'article %q de votre commande %s a été annulé par le producteur.", productName, ord.Number)
	if reason != "" {
		body += fmt.Sprintf(" Motif : %s", reason)
	}
	if err := s.dispatcher.Send(ctx, ord.ContactPhone, subject, body); err != nil {
		s.log.Warn("client cancellation notification dispatch failed",
			zap.String("order_id", orderID.String()),
			zap.String("item_id", itemID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// NotifyClientOrderCancelled confirms an order-level cancellation, naming
// the refunded amount when a settled payment was reversed.
func (s *Service) NotifyClientOrderCancelled(ctx context.Context, orderID uuid.UUID, reason string, refundedCfa int64) error {
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return fmt.Errorf("order not found: %s", orderID)
	}

	subject := fmt.Sprintf("Commande %s annulée", ord.Number)
	body := fmt.Sprintf("Votre commande %s a été annulée.", ord.Number)
	if reason != "" {
		body += fmt.Sprintf(" Motif : %s", reason)
	}
	if refundedCfa > 0 {
		body += fmt.Sprintf(" Un remboursement de %d FCFA sera effectué.", refundedCfa)
	}
	if err := s.dispatcher.Send(ctx, ord.ContactPhone, subject, body); err != nil {
		s.log.Warn("client order cancellation dispatch failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
	}
	return nil
}

// NotifyClientOrderPlaced is the post-placement client confirmation.
func (s *Service) NotifyClientOrderPlaced(ctx context.Context, orderID uuid.UUID) error {
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return fmt.Errorf("order not found: %s", orderID)
	}

	subject := fmt.Sprintf("Commande %s enregistrée", ord.Number)
	body := fmt.Sprintf("Votre commande %s d'un montant de %d FCFA a bien été enregistrée.", ord.Number, ord.AmountCfa)
	if err := s.dispatcher.Send(ctx, ord.ContactPhone, subject, body); err != nil {
		s.log.Warn("client confirmation dispatch failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
	}
	return nil
}
