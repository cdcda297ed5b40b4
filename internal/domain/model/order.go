package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// デモ注文。サーバー側には保存しない（チェックアウト完了画面用の一時データ）。
type Order struct {
	Reference string          `json:"reference"`
	Items     []CartLine      `json:"items"`
	ItemCount int64           `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
