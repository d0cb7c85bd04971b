package cart

import (
	"context"
	"fmt"

	"purenest-be/internal/logger"
	"purenest-be/internal/product"
	"purenest-be/internal/utils"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
//
// Price policy: a line's price_at_time is refreshed from the current catalog
// price whenever the line is added to or its quantity changed; it is frozen
// only when copied into an order at checkout.
type Service interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, params AddItemParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, params UpdateItemParams) (*CartItem, error)
	RemoveItem(ctx context.Context, params RemoveItemParams) error
	Clear(ctx context.Context, userID string) error
	Validate(ctx context.Context, c *Cart) (*ValidationResult, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

// NewService creates a new cart service
func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return s.repo.GetOrCreateCart(ctx, userID)
}

// AddItem adds a product to the user's cart, merging into an existing
// (product, size) line by incrementing its quantity.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
		zap.String("size", params.Size),
	)

	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// 1. Get product (only active products allowed)
	prod, err := s.productRepo.GetProductByID(ctx, product.GetProductOptions{
		ProductID:  params.ProductID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, ErrProductUnavailable
	}

	// 2. Validate requested size against the product's variants
	if !prod.HasSize(params.Size) {
		return nil, ErrInvalidSize
	}

	price := prod.PriceForSize(params.Size)
	stock := prod.StockForSize(params.Size)

	// 3. Get existing cart and line (if any)
	c, err := s.repo.GetOrCreateCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItem(ctx, c.ID, params.ProductID, params.Size)
	if err != nil {
		return nil, err
	}

	// 4. Validate stock against the cumulative requested quantity
	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}
	if stock < finalQty {
		log.Warn("insufficient stock",
			zap.Int("stock", stock),
			zap.Int("requested", finalQty),
		)
		return nil, ErrInsufficientStock
	}

	// 5. Merge or append
	var item *CartItem
	if existing != nil {
		item, err = s.repo.UpdateItemQuantity(ctx, c.ID, params.ProductID, params.Size, finalQty, price)
	} else {
		item, err = s.repo.InsertItem(ctx, c.ID, params.ProductID, params.Size, params.Quantity, price)
	}
	if err != nil {
		return nil, err
	}

	log.Info("cart item added", zap.Int("quantity", item.Quantity))
	return item, nil
}

// UpdateQuantity sets the absolute quantity of an existing line, re-checking
// stock against the new value.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateItemParams) (*CartItem, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	prod, err := s.productRepo.GetProductByID(ctx, product.GetProductOptions{
		ProductID:  params.ProductID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, ErrProductUnavailable
	}

	if stock := prod.StockForSize(params.Size); stock < params.Quantity {
		return nil, ErrInsufficientStock
	}

	c, err := s.repo.GetOrCreateCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	return s.repo.UpdateItemQuantity(ctx, c.ID, params.ProductID, params.Size,
		params.Quantity, prod.PriceForSize(params.Size))
}

// RemoveItem deletes the matching line; removing an absent line is an error.
func (s *service) RemoveItem(ctx context.Context, params RemoveItemParams) error {
	c, err := s.repo.GetOrCreateCart(ctx, params.UserID)
	if err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, c.ID, params.ProductID, params.Size)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	return s.repo.ClearByUser(ctx, userID)
}

// Validate re-checks every line against current product state without
// mutating the cart or stock. The summary counts only lines that passed.
func (s *service) Validate(ctx context.Context, c *Cart) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	var totalAmount float64
	for _, item := range c.Items {
		prod, err := s.productRepo.GetProductByID(ctx, product.GetProductOptions{
			ProductID: item.ProductID,
		})
		if err != nil {
			return nil, err
		}

		if prod == nil {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("product not found for cart item %s", item.ID))
			continue
		}

		if !prod.IsActive {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s is no longer available", prod.Name))
			continue
		}

		if stock := prod.StockForSize(item.Size); stock < item.Quantity {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("only %d %s available in stock for size %s", stock, prod.Name, item.Size))
			continue
		}

		result.Summary.TotalItems += item.Quantity
		totalAmount += item.PriceAtTime * float64(item.Quantity)
	}

	result.Summary.TotalAmount = utils.Round2(totalAmount)
	return result, nil
}
