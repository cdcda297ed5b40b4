package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"app/internal/domain/model"
	"app/internal/platform/logger"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store は1セッション分のカート集約を所有する。
// 明細リストを変更できるのはStoreだけ。同一商品は1明細に必ずマージする。
type Store struct {
	mu    sync.Mutex
	slot  string
	lines []model.CartLine
	snaps repo.SnapshotRepository
	log   *logger.Logger
}

// NewStore は前回のスナップショットを復元してStoreを作る。
// スナップショットが無い/壊れている場合は空カートで開始する（起動は止めない）。
func NewStore(ctx context.Context, slot string, snaps repo.SnapshotRepository, log *logger.Logger) *Store {
	s := &Store{
		slot:  slot,
		snaps: snaps,
		log:   log,
	}

	lines, err := snaps.Load(ctx, slot)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			log.Warn("cart snapshot load failed, starting empty", "slot", slot, "error", err)
		}
		return s
	}

	s.lines = lines
	return s
}

// AddItem は商品をカートへ追加する（数量は常に+1）。
// 既存明細があればその位置のまま数量を増やす。無ければ末尾に追加。
// 在庫切れ商品を弾くのは呼び出し側の責務なのでここではチェックしない。
func (s *Store) AddItem(ctx context.Context, p model.Product) {
	if strings.TrimSpace(p.ID) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, model.CartLine{
		LineID:    uuid.NewString(),
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
	s.persist(ctx)
}

// RemoveItem は該当商品の明細を削除する。無ければ何もしない。
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	if strings.TrimSpace(productID) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

// UpdateQuantity は明細の数量を絶対値で置き換える（AddItemの+1とは別物）。
// quantity <= 0 は削除と同じ扱い。該当明細が無ければ何もしない。
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int64) {
	if strings.TrimSpace(productID) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear は明細を全削除する。チェックアウト完了時に使う。
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines は表示用に明細のコピーを挿入順で返す。
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// ItemCount は全明細の数量合計。
func (s *Store) ItemCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal は unit_price × quantity の合計。
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Total は支払額。今は小計と同じ（税/送料を入れる時はここに足す）。
func (s *Store) Total() decimal.Decimal {
	return s.Subtotal()
}

func (s *Store) removeLocked(ctx context.Context, productID string) {
	kept := s.lines[:0]
	removed := false
	for _, l := range s.lines {
		if l.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	s.lines = kept

	if removed {
		s.persist(ctx)
	}
}

// persist は変更後のスナップショットを保存する。
// メモリ側は既に更新済みなので、保存失敗してもロールバックせずログだけ残す。
func (s *Store) persist(ctx context.Context) {
	snapshot := make([]model.CartLine, len(s.lines))
	copy(snapshot, s.lines)

	if err := s.snaps.Save(ctx, s.slot, snapshot); err != nil {
		s.log.Warn("cart snapshot save failed", "slot", s.slot, "error", err)
	}
}
