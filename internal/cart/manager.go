package cart

import (
	"context"
	"sync"

	"app/internal/platform/logger"
	repo "app/internal/repository"
)

// Manager はセッションIDごとにStoreを1つだけ持つ。
// グローバル変数で共有せず、ここからハンドラへDIする。
// 同じslotを別プロセス/別タブが書く場合は後勝ち（マージはしない）。
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	snaps  repo.SnapshotRepository
	log    *logger.Logger
}

func NewManager(snaps repo.SnapshotRepository, log *logger.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		snaps:  snaps,
		log:    log,
	}
}

// Get はセッションのStoreを返す。初回はスナップショットから復元して作る。
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}

	s := NewStore(ctx, sessionID, m.snaps, m.log)
	m.stores[sessionID] = s
	return s
}
