package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/cart"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 明細の不変条件（マージ・数量）はcart.Storeが守る。ここは商品解決とレスポンス組み立てだけ。
type CartUsecase struct {
	carts       *cart.Manager
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(carts *cart.Manager, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		carts:       carts,
		productRepo: productRepo,
	}
}

type CartLineResponse struct {
	LineID    string          `json:"line_id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	ItemCount int64              `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Total     decimal.Decimal    `json:"total"`
}

// GetCart はカートの現在状態を返す。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	return buildCartResponse(u.carts.Get(ctx, sessionID)), nil
}

// AddItem はカートに追加（同一商品は数量+1）。
// 在庫切れでも追加は許す。追加ボタンを無効化するのはUI側の責務。
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, productID string) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if strings.TrimSpace(productID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	store := u.carts.Get(ctx, sessionID)
	store.AddItem(ctx, p)

	return buildCartResponse(store), nil
}

// UpdateQuantity は数量の絶対値セット。0以下は削除扱い。
// 該当明細が無くてもエラーにせず現在状態を返す。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, productID string, quantity int64) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if strings.TrimSpace(productID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	store := u.carts.Get(ctx, sessionID)
	store.UpdateQuantity(ctx, productID, quantity)

	return buildCartResponse(store), nil
}

// RemoveItem は明細削除。無ければ何もしない。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, productID string) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if strings.TrimSpace(productID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	store := u.carts.Get(ctx, sessionID)
	store.RemoveItem(ctx, productID)

	return buildCartResponse(store), nil
}

// ClearCart は全明細削除。
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	store := u.carts.Get(ctx, sessionID)
	store.Clear(ctx)

	return buildCartResponse(store), nil
}

// StoreのスナップショットからCartResponseを組み立てる。
func buildCartResponse(store *cart.Store) CartResponse {
	lines := store.Lines()

	items := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineResponse{
			LineID:    l.LineID,
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Image:     l.Image,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		})
	}

	return CartResponse{
		Items:     items,
		ItemCount: store.ItemCount(),
		Subtotal:  store.Subtotal(),
		Total:     store.Total(),
	}
}
