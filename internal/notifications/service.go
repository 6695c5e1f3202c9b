package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tourflo/internal/shared/config"
	"tourflo/pkg/logger"
)

// NotificationService is the single entry point the rest of the app uses:
// publish on one side, a Kafka consumer pool draining into email on the other
type NotificationService interface {
	Publish(ctx context.Context, notification *EmailNotification) error
	PublishBatch(ctx context.Context, notifications []*EmailNotification) error
	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type kafkaNotificationService struct {
	producer   NotificationProducer
	consumer   NotificationConsumer
	numWorkers int

	isRunning bool
	mu        sync.RWMutex
	cancel    context.CancelFunc
}

// NewService builds the Kafka-backed pipeline from application config.
// Without an SMTP host the consumer logs deliveries instead of sending,
// which keeps local development broker-only.
func NewService(kafkaCfg config.KafkaConfig, emailCfg config.EmailConfig) (NotificationService, error) {
	var emailService EmailService
	if emailCfg.SMTPHost == "" {
		emailService = NewLogEmailService()
	} else {
		emailService = NewSMTPEmailService(&SMTPConfig{
			Host:      emailCfg.SMTPHost,
			Port:      emailCfg.SMTPPort,
			Username:  emailCfg.SMTPUsername,
			Password:  emailCfg.SMTPPassword,
			FromEmail: emailCfg.FromEmail,
			FromName:  emailCfg.FromName,
			UseTLS:    true,
		})
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = kafkaCfg.Brokers
	producerConfig.NotificationTopic = kafkaCfg.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = kafkaCfg.Brokers
	consumerConfig.Topics = []string{kafkaCfg.NotificationTopic}
	consumerConfig.GroupID = kafkaCfg.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	return &kafkaNotificationService{
		producer:   producer,
		consumer:   consumer,
		numWorkers: kafkaCfg.NumWorkers,
	}, nil
}

func (s *kafkaNotificationService) Publish(ctx context.Context, notification *EmailNotification) error {
	return s.producer.PublishNotification(ctx, notification)
}

func (s *kafkaNotificationService) PublishBatch(ctx context.Context, notifications []*EmailNotification) error {
	return s.producer.PublishBatchNotifications(ctx, notifications)
}

func (s *kafkaNotificationService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service already running")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	if err := s.consumer.StartConsumers(workerCtx, s.numWorkers); err != nil {
		cancel()
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	logger.GetDefault().Info("notification service started", "workers", s.numWorkers)
	return nil
}

func (s *kafkaNotificationService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	var firstErr error
	if err := s.consumer.Stop(); err != nil {
		firstErr = err
	}
	if err := s.producer.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	s.isRunning = false
	logger.GetDefault().Info("notification service stopped")
	return firstErr
}

func (s *kafkaNotificationService) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return fmt.Errorf("notification service not running")
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.producer.HealthCheck(checkCtx); err != nil {
		return fmt.Errorf("producer unhealthy: %w", err)
	}
	if err := s.consumer.HealthCheck(checkCtx); err != nil {
		return fmt.Errorf("consumer unhealthy: %w", err)
	}
	return nil
}
