package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"order-service/internal/domain"
	rabbit "order-service/internal/infra/rabbitmq"
	"order-service/internal/pricing"
	"order-service/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// orderNumberAttempts bounds the retry loop on order-number collisions.
const orderNumberAttempts = 5

// OrderService orchestrates order creation and post-creation mutation. It is
// the only writer of order rows and the only caller of the stock primitives.
type OrderService struct {
	repo      repository.OrderRepository
	catalog   repository.CatalogRepository
	stock     repository.StockRepository
	publisher rabbit.PublisherInterface
}

func NewOrderService(
	repo repository.OrderRepository,
	catalog repository.CatalogRepository,
	stock repository.StockRepository,
	publisher rabbit.PublisherInterface,
) *OrderService {
	return &OrderService{
		repo:      repo,
		catalog:   catalog,
		stock:     stock,
		publisher: publisher,
	}
}

type CreateOrderItemInput struct {
	ProductID string
	VariantID *string
	Quantity  int
	// UnitPrice is supplied by the caller at creation time and snapshotted
	// as-is; it is not re-derived from the catalog (price overrides).
	UnitPrice int64
}

type CreateOrderInput struct {
	Items           []CreateOrderItemInput
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   string
	ShippingFee     int64
	Discount        int64
	Notes           string
	UserID          *string
}

type UpdateStatusInput struct {
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	Notes         *string
}

// resolvedLine is the catalog view of one requested line at resolution time.
type resolvedLine struct {
	product     *domain.Product
	variant     *domain.ProductVariant
	variantName string
	unitPrice   int64
	available   int
}

// resolveLine loads the product (and variant, when given), verifies variant
// ownership and checks the requested quantity against the effective stock.
func (s *OrderService) resolveLine(ctx context.Context, productID string, variantID *string, quantity int) (*resolvedLine, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive, got %d", quantity)
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	rl := &resolvedLine{
		product:   product,
		unitPrice: product.Price,
		available: product.Stock,
	}

	if variantID != nil {
		variant, err := s.catalog.GetVariant(ctx, *variantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrVariantNotFound, *variantID)
		}
		if variant.ProductID != productID {
			return nil, domain.NewValidationError(
				"variant %s does not belong to product %s", *variantID, productID)
		}
		rl.variant = variant
		rl.variantName = variant.DisplayName()
		rl.unitPrice = variant.EffectivePrice(product)
		rl.available = variant.Stock
	}

	if quantity > rl.available {
		return nil, &domain.InsufficientStockError{
			ProductName: product.Name,
			VariantName: rl.variantName,
			Requested:   quantity,
			Available:   rl.available,
		}
	}
	return rl, nil
}

// CreateOrder validates every requested line against the catalog, persists
// the header and items, then debits stock per item. If the item write fails
// after the header was written, the header is deleted again so the order
// never exists headless.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("order must contain at least one item")
	}
	if in.ShippingAddress == "" {
		return nil, domain.NewValidationError("shipping address is required")
	}

	items := make([]*domain.OrderItem, 0, len(in.Items))
	for _, li := range in.Items {
		rl, err := s.resolveLine(ctx, li.ProductID, li.VariantID, li.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, &domain.OrderItem{
			ID:          uuid.NewString(),
			ProductID:   li.ProductID,
			VariantID:   li.VariantID,
			ProductName: rl.product.Name,
			VariantName: rl.variantName,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			LineTotal:   pricing.LineTotal(li.Quantity, li.UnitPrice),
		})
	}

	itemValues := make([]domain.OrderItem, len(items))
	for i, it := range items {
		itemValues[i] = *it
	}
	totals := pricing.ComputeTotals(itemValues, in.ShippingFee, in.Discount)

	order := &domain.Order{
		ID:              uuid.NewString(),
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		UserID:          in.UserID,
		Subtotal:        totals.Subtotal,
		ShippingFee:     in.ShippingFee,
		Discount:        in.Discount,
		Total:           totals.Total,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
	}

	if err := s.persistHeader(ctx, order); err != nil {
		return nil, err
	}

	for _, it := range items {
		it.OrderID = order.ID
	}
	if err := s.repo.CreateItems(ctx, items); err != nil {
		// Compensating delete: the header must not survive without items.
		if delErr := s.repo.Delete(ctx, order.ID); delErr != nil {
			log.Printf("rollback of order %s failed: %v (original error: %v)", order.ID, delErr, err)
		}
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, it := range items {
		it := it
		target, isVariant := lineTarget(it.ProductID, it.VariantID)
		g.Go(func() error {
			return s.debitStock(gctx, it.ProductName, it.VariantName, target, isVariant, it.Quantity)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.created", domain.OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		ItemCount:   len(items),
		CreatedAt:   time.Now(),
	})

	return s.reload(ctx, order.ID)
}

// persistHeader writes the header, regenerating the order number if the
// unique index reports a collision.
func (s *OrderService) persistHeader(ctx context.Context, order *domain.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = generateOrderNumber(time.Now())
		err := s.repo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return err
		}
		log.Printf("order number %s collided, retrying", order.OrderNumber)
	}
	return fmt.Errorf("could not allocate a unique order number after %d attempts", orderNumberAttempts)
}

// AddItem puts one more line on an editable order, merging into an existing
// line when the (product, variant) pair is already present. The merged line
// keeps its original unit-price snapshot; a new line gets a freshly resolved
// price.
func (s *OrderService) AddItem(ctx context.Context, orderID, productID string, variantID *string, quantity int) (*domain.Order, error) {
	order, err := s.loadEditable(ctx, orderID)
	if err != nil {
		return nil, err
	}

	rl, err := s.resolveLine(ctx, productID, variantID, quantity)
	if err != nil {
		return nil, err
	}

	if existing := order.FindItemByProduct(productID, variantID); existing != nil {
		existing.Quantity += quantity
		existing.LineTotal = pricing.LineTotal(existing.Quantity, existing.UnitPrice)
		if err := s.repo.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		item := &domain.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   productID,
			VariantID:   variantID,
			ProductName: rl.product.Name,
			VariantName: rl.variantName,
			Quantity:    quantity,
			UnitPrice:   rl.unitPrice,
			LineTotal:   pricing.LineTotal(quantity, rl.unitPrice),
		}
		if err := s.repo.CreateItems(ctx, []*domain.OrderItem{item}); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
	}

	target, isVariant := lineTarget(productID, variantID)
	if err := s.debitStock(ctx, rl.product.Name, rl.variantName, target, isVariant, quantity); err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, order); err != nil {
		return nil, err
	}
	return s.reload(ctx, order.ID)
}

// UpdateItem changes a line's quantity. The signed difference against the
// current quantity drives the stock adjustment; the unit-price snapshot is
// never touched.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID string, newQuantity int) (*domain.Order, error) {
	order, err := s.loadEditable(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item := order.FindItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if newQuantity <= 0 {
		return nil, domain.NewValidationError("quantity must be positive, got %d", newQuantity)
	}

	delta := newQuantity - item.Quantity
	if delta == 0 {
		return order, nil
	}

	target, isVariant := lineTarget(item.ProductID, item.VariantID)
	if delta > 0 {
		// The conditional decrement doubles as the availability check for
		// the additional quantity.
		if err := s.debitStock(ctx, item.ProductName, item.VariantName, target, isVariant, delta); err != nil {
			return nil, err
		}
	}

	item.Quantity = newQuantity
	item.LineTotal = pricing.LineTotal(newQuantity, item.UnitPrice)
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if delta < 0 {
		if err := s.stock.IncrementStock(ctx, target, isVariant, -delta); err != nil {
			return nil, err
		}
	}

	if err := s.recomputeTotals(ctx, order); err != nil {
		return nil, err
	}
	return s.reload(ctx, order.ID)
}

// RemoveItem deletes a line and restores its stock. The last remaining line
// cannot be removed; the caller has to cancel the order instead.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID string) (*domain.Order, error) {
	order, err := s.loadEditable(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item := order.FindItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if len(order.Items) == 1 {
		return nil, &domain.BusinessRuleError{
			Message: "cannot remove the only item on an order; cancel the order instead",
		}
	}

	target, isVariant := lineTarget(item.ProductID, item.VariantID)
	if err := s.stock.IncrementStock(ctx, target, isVariant, item.Quantity); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}
	kept := order.Items[:0]
	for _, it := range order.Items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	order.Items = kept

	if err := s.recomputeTotals(ctx, order); err != nil {
		return nil, err
	}
	return s.reload(ctx, order.ID)
}

// UpdateStatus is a plain field update after the existence check. Transition
// semantics beyond that belong to the administrative caller; stock is never
// touched here.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, in UpdateStatusInput) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.NewValidationError("unknown order status %q", *in.Status)
		}
		order.Status = *in.Status
	}
	if in.PaymentStatus != nil {
		if !in.PaymentStatus.Valid() {
			return nil, domain.NewValidationError("unknown payment status %q", *in.PaymentStatus)
		}
		order.PaymentStatus = *in.PaymentStatus
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.status_changed", domain.OrderStatusChangedEvent{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
	})

	return order, nil
}

// Cancel restores every line's stock and marks the order cancelled. Legal
// only from pending or confirmed; orders are never physically deleted.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, &domain.InvalidStateTransitionError{Status: order.Status}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range order.Items {
		it := order.Items[i]
		g.Go(func() error {
			target, isVariant := lineTarget(it.ProductID, it.VariantID)
			return s.stock.IncrementStock(gctx, target, isVariant, it.Quantity)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order.Status = domain.StatusCancelled
	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.cancelled", domain.OrderCancelledEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	})

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.load(ctx, id)
}

func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderNumber)
	}
	return order, nil
}

func (s *OrderService) load(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	return order, nil
}

func (s *OrderService) loadEditable(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Editable() {
		return nil, &domain.InvalidStateTransitionError{Status: order.Status}
	}
	return order, nil
}

func (s *OrderService) reload(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.load(ctx, orderID)
}

func (s *OrderService) recomputeTotals(ctx context.Context, order *domain.Order) error {
	totals := pricing.ComputeTotals(order.Items, order.ShippingFee, order.Discount)
	order.Subtotal = totals.Subtotal
	order.Total = totals.Total
	return s.repo.UpdateOrder(ctx, order)
}

// debitStock applies the conditional decrement. A failed guard means the
// stock moved between resolution and debit; it is reported as insufficient
// stock discovered late rather than trusting the earlier read.
func (s *OrderService) debitStock(ctx context.Context, productName, variantName, targetID string, isVariant bool, qty int) error {
	ok, err := s.stock.DecrementStock(ctx, targetID, isVariant, qty)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.InsufficientStockError{
			ProductName: productName,
			VariantName: variantName,
			Requested:   qty,
			Available:   s.availableStock(ctx, targetID, isVariant),
		}
	}
	return nil
}

func (s *OrderService) availableStock(ctx context.Context, targetID string, isVariant bool) int {
	if isVariant {
		if v, err := s.catalog.GetVariant(ctx, targetID); err == nil && v != nil {
			return v.Stock
		}
		return 0
	}
	if p, err := s.catalog.GetProduct(ctx, targetID); err == nil && p != nil {
		return p.Stock
	}
	return 0
}

func (s *OrderService) publishEvent(ctx context.Context, routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("failed to publish %s: %v", routingKey, err)
	}
}

// lineTarget picks the stock counter for a line: the variant's when a variant
// was specified, else the product's.
func lineTarget(productID string, variantID *string) (string, bool) {
	if variantID != nil {
		return *variantID, true
	}
	return productID, false
}
