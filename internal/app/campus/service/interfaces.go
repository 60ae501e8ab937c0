package service

import "context"

// MessagePublisher абстракция над Kafka producer для отправки событий отзывов
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
