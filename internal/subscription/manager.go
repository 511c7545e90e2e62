package subscription

import (
	"sync"
	"time"

	"github.com/VitaminP8/gqltour/graph/model"
)

const publishTimeout = 500 * time.Millisecond

type SubscriptionManager struct {
	mu       sync.Mutex
	subs     map[string][]chan *model.Post // topic -> список каналов подписчиков
	observer Observer
}

// NewSubscriptionManager создает менеджер, observer может быть nil
func NewSubscriptionManager(observer Observer) *SubscriptionManager {
	return &SubscriptionManager{
		subs:     make(map[string][]chan *model.Post),
		observer: observer,
	}
}

func (m *SubscriptionManager) Subscribe(topic string) (<-chan *model.Post, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Post, 1) // Буфер 1, чтобы не блокировался писатель

	m.subs[topic] = append(m.subs[topic], ch)
	if m.observer != nil {
		m.observer.SubscriberAdded()
	}

	// функция для отписки, повторный вызов ничего не делает
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			subscribers := m.subs[topic]
			for i, sub := range subscribers {
				if sub == ch {
					m.subs[topic] = append(subscribers[:i], subscribers[i+1:]...)
					close(ch)
					break
				}
			}
			if len(m.subs[topic]) == 0 {
				delete(m.subs, topic)
			}
			if m.observer != nil {
				m.observer.SubscriberRemoved()
			}
		})
	}

	return ch, cancel
}

// Publish рассылает пост подписчикам топика. Медленного подписчика ждем недолго, потом пропускаем.
func (m *SubscriptionManager) Publish(topic string, post *model.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[topic] {
		select {
		case sub <- post.Clone():
		case <-time.After(publishTimeout):
		}
	}
}
