package service

import "sync"

// Чего ждём от следующего текстового сообщения в чате.
type awaitKey string

const (
	awaitTimeframe awaitKey = "timeframe"
	awaitVolume    awaitKey = "volume"
	awaitChange    awaitKey = "change"
)

type awaitStore struct {
	mu sync.Mutex
	m  map[int64]awaitKey // chatID -> key
}

func newAwaitStore() *awaitStore {
	return &awaitStore{m: make(map[int64]awaitKey)}
}

func (t *Telegram) setAwait(chatID int64, key awaitKey) {
	t.await.mu.Lock()
	defer t.await.mu.Unlock()
	t.await.m[chatID] = key
}

func (t *Telegram) popAwait(chatID int64) (awaitKey, bool) {
	t.await.mu.Lock()
	defer t.await.mu.Unlock()
	key, ok := t.await.m[chatID]
	delete(t.await.m, chatID)
	return key, ok
}

func (t *Telegram) clearAwait(chatID int64) {
	t.await.mu.Lock()
	defer t.await.mu.Unlock()
	delete(t.await.m, chatID)
}
