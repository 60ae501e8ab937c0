package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для api и worker)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="campus-api"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты от 1ms до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// DbTxConflicts - конфликты уникальности внутри транзакций
// Растёт при гонках toggle-запросов от одного пользователя
var DbTxConflicts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_tx_conflicts_total",
		Help: "Total number of unique constraint conflicts inside transactions",
	},
	[]string{"service", "relation"}, // relation: review_like, saved_college, review
)

// =============================================================================
// Redis Метрики (используются worker для снапшота статистики)
// =============================================================================

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"}, // operation: get, set, del
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed - полученные сообщения
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaConsumeDuration - время обработки сообщения
var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Business Метрики (специфичные для Campusrate)
// =============================================================================

// ReviewsCreated - созданные отзывы
var ReviewsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reviews_created_total",
		Help: "Total number of reviews created",
	},
)

// ReviewsDeleted - удалённые отзывы
var ReviewsDeleted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reviews_deleted_total",
		Help: "Total number of reviews deleted",
	},
)

// ReviewsRating - распределение оценок
var ReviewsRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "reviews_rating",
		Help:    "Distribution of review ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// ReviewLikesToggled - переключения лайков отзывов
var ReviewLikesToggled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_likes_toggled_total",
		Help: "Total number of review like toggles",
	},
	[]string{"action"}, // liked, unliked
)

// CollegeBookmarksToggled - переключения закладок колледжей
var CollegeBookmarksToggled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "college_bookmarks_toggled_total",
		Help: "Total number of college bookmark toggles",
	},
	[]string{"action"}, // saved, removed
)

// CollegeListRequests - запросы листинга по политикам сортировки
var CollegeListRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "college_list_requests_total",
		Help: "Total number of college listing requests by sort policy",
	},
	[]string{"sort_by"}, // highest, most, weighted, none
)

// --- Worker ---

// WorkerEventsProcessed - обработанные события отзывов
var WorkerEventsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_review_events_processed_total",
		Help: "Total number of review events processed by worker",
	},
	[]string{"event_type", "status"}, // status: success, failed
)

// WorkerStatsSnapshots - снапшоты статистики платформы
var WorkerStatsSnapshots = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_stats_snapshots_total",
		Help: "Total number of platform stats snapshots",
	},
	[]string{"status"}, // success, failed
)

// WorkerSnapshotDuration - время построения снапшота
var WorkerSnapshotDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "worker_stats_snapshot_duration_seconds",
		Help:    "Duration of platform stats snapshot build",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	},
)
