package repository

import (
	"app/internal/domain/model"
	"context"
)

// カートスナップショットの読み書き。
// slotはセッションごとの保存先キー。Saveは前回分を丸ごと置き換える。
type SnapshotRepository interface {
	// 保存が無ければErrNotFound
	Load(ctx context.Context, slot string) ([]model.CartLine, error)
	Save(ctx context.Context, slot string, lines []model.CartLine) error
}
