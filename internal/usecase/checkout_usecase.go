package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/cart"
	"app/internal/domain/model"
	"app/internal/platform/logger"

	"github.com/google/uuid"
)

// CheckoutUsecase はデモ決済。カートを読んで注文を組み立て、カートを空にするだけ。
// 実際の決済も注文の保存もしない。
type CheckoutUsecase struct {
	carts *cart.Manager
	log   *logger.Logger
}

// DI
func NewCheckoutUsecase(carts *cart.Manager, log *logger.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{carts: carts, log: log}
}

// PlaceOrder は注文確定。空カートは400。
// 合計はカート確定時点の値を注文に写してからカートを空にする。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, sessionID string) (model.Order, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "no session")
	}

	store := u.carts.Get(ctx, sessionID)

	lines := store.Lines()
	if len(lines) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	order := model.Order{
		Reference: newOrderReference(),
		Items:     lines,
		ItemCount: store.ItemCount(),
		Subtotal:  store.Subtotal(),
		Total:     store.Total(),
		CreatedAt: time.Now(),
	}

	store.Clear(ctx)

	u.log.Info("order placed",
		"reference", order.Reference,
		"item_count", order.ItemCount,
		"total", order.Total.String(),
	)

	return order, nil
}

// 注文番号はuuidの先頭セグメントを大文字化したもの（例: 9F3A81C2）。
func newOrderReference() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
