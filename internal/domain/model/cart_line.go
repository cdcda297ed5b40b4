package model

import "github.com/shopspring/decimal"

// カートの明細。
// name/unit_price/image は追加時点のスナップショットを必ず保存。
// 後から商品価格が変わっても既存明細には反映しない。
type CartLine struct {
	LineID    string          `json:"line_id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image"`
	Quantity  int64           `json:"quantity"`
}

// 明細の小計（unit_price × quantity）
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
