package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"campusrate/internal/app/worker/entity"
	"campusrate/internal/app/worker/service"
	"campusrate/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaConsumer обрабатывает события из Kafka топика review_events
type KafkaConsumer struct {
	reader   *kafka.Reader
	statsSvc service.StatsServiceInterface
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewKafkaConsumer создает новый Kafka consumer
func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	statsSvc service.StatsServiceInterface,
) *KafkaConsumer {
	// Настраиваем Kafka reader
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    minBytes,
		MaxBytes:    maxBytes,
		StartOffset: kafka.LastOffset, // Начинаем читать с последнего сообщения
		// Настройки для автоматического коммита offset
		CommitInterval: time.Second,
		// Таймауты
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		statsSvc: statsSvc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	log.Println("Starting Kafka consumer...")
	go c.consume(ctx)
}

// Stop останавливает consumer
func (c *KafkaConsumer) Stop() {
	log.Println("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	log.Println("Kafka consumer stopped")
}

// consume читает и обрабатывает сообщения из Kafka
func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			// Читаем сообщение с таймаутом
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				// Если контекст был отменен, выходим
				if ctx.Err() != nil {
					return
				}

				// Логируем ошибку и продолжаем
				log.Printf("Error fetching message: %v", err)
				time.Sleep(time.Second)
				continue
			}

			// Обрабатываем сообщение
			if err := c.processMessage(ctx, message); err != nil {
				log.Printf("Error processing message: %v", err)
				// Не коммитим offset при ошибке - сообщение будет повторно обработано
			} else {
				// Коммитим offset после успешной обработки
				if err := c.reader.CommitMessages(ctx, message); err != nil {
					log.Printf("Error committing message: %v", err)
				}
			}
		}
	}
}

// processMessage обрабатывает одно сообщение из Kafka
func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	start := time.Now()

	// Парсим событие отзыва
	var event entity.ReviewEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		metrics.WorkerEventsProcessed.WithLabelValues("unknown", "failed").Inc()
		return fmt.Errorf("failed to unmarshal review event: %w", err)
	}

	log.Printf("Received %s event for review %s (offset: %d, partition: %d)",
		event.EventType, event.ReviewID, message.Offset, message.Partition)

	// Обрабатываем событие
	if err := c.statsSvc.RecordEvent(ctx, &event); err != nil {
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "failed").Inc()
		metrics.RecordKafkaError("stats-worker", c.reader.Config().Topic, "consume")
		return fmt.Errorf("failed to process review event: %w", err)
	}

	metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "success").Inc()
	metrics.RecordKafkaMessageConsumed("stats-worker", c.reader.Config().Topic, c.reader.Config().GroupID, time.Since(start))

	return nil
}

// GetStats возвращает статистику consumer
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
