package subscription

import (
	"strconv"

	"github.com/VitaminP8/gqltour/graph/model"
)

const TopicPostAdded = "postAdded"

// PostLikedTopic - канал событий лайков одного поста
func PostLikedTopic(postID int) string {
	return "postLiked:" + strconv.Itoa(postID)
}

type Manager interface {
	Subscribe(topic string) (<-chan *model.Post, func())
	Publish(topic string, post *model.Post)
}

// Observer получает уведомления о числе подписчиков (метрики)
type Observer interface {
	SubscriberAdded()
	SubscriberRemoved()
}
