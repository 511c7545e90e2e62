package mocks

import (
	"sync"

	"github.com/VitaminP8/gqltour/graph/model"
	"github.com/VitaminP8/gqltour/internal/subscription"
)

// MockSubscriptionManager поверх настоящего менеджера запоминает все публикации
type MockSubscriptionManager struct {
	*subscription.SubscriptionManager

	mu            sync.Mutex
	notifications map[string][]*model.Post // Для отслеживания в тестах
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		SubscriptionManager: subscription.NewSubscriptionManager(nil),
		notifications:       make(map[string][]*model.Post),
	}
}

func (m *MockSubscriptionManager) Publish(topic string, post *model.Post) {
	m.mu.Lock()
	m.notifications[topic] = append(m.notifications[topic], post.Clone())
	m.mu.Unlock()

	m.SubscriptionManager.Publish(topic, post)
}

// GetNotifications - вспомогательный метод для тестирования,
// возвращает все публикации в топик
func (m *MockSubscriptionManager) GetNotifications(topic string) []*model.Post {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*model.Post(nil), m.notifications[topic]...)
}
