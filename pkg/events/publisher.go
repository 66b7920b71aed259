package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/metrics"
	"github.com/Ramsey-B/collably/pkg/store"
)

// Config holds Kafka configuration
type Config struct {
	Brokers []string
	Topic   string
}

// ParseConfig parses a comma-separated broker string. Blank entries are dropped.
func ParseConfig(brokers string, topic string) Config {
	var brokerList []string
	for _, broker := range strings.Split(brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokerList = append(brokerList, broker)
		}
	}

	return Config{
		Brokers: brokerList,
		Topic:   topic,
	}
}

// Enabled reports whether any broker is configured
func (c Config) Enabled() bool {
	return len(c.Brokers) > 0
}

// ActionMessage is the record written for every settled store action
type ActionMessage struct {
	Type      string         `json:"type"`
	Slice     string         `json:"slice"`
	Op        store.Op       `json:"op"`
	Phase     store.Phase    `json:"phase"`
	Key       string         `json:"key,omitempty"`
	Error     string         `json:"error,omitempty"`
	Kind      apierrors.Kind `json:"kind,omitempty"`
	Token     string         `json:"token,omitempty"`
	Scope     string         `json:"scope,omitempty"`
	TraceID   string         `json:"traceId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewActionMessage converts a store action into its stream record
func NewActionMessage(action store.Action) ActionMessage {
	return ActionMessage{
		Type:      action.Type,
		Slice:     action.Slice,
		Op:        action.Op,
		Phase:     action.Phase,
		Key:       action.Key,
		Error:     action.Error,
		Kind:      action.ErrorKind,
		Token:     action.Token,
		Scope:     action.Scope,
		TraceID:   action.TraceID,
		Timestamp: action.At,
	}
}

// messageWriter is the part of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher streams settled store actions to Kafka
type Publisher struct {
	writer  messageWriter
	logger  ectologger.Logger
	topic   string
	brokers []string

	mu           sync.Mutex
	unsubscribes []func()
}

// NewPublisher creates a publisher backed by an async writer. Delivery failures
// are reported through the writer's completion callback.
func NewPublisher(cfg Config, logger ectologger.Logger) *Publisher {
	p := &Publisher{
		logger:  logger,
		topic:   cfg.Topic,
		brokers: cfg.Brokers,
	}

	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              100,
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion:             p.completed,
	}

	return p
}

func (p *Publisher) completed(messages []kafka.Message, err error) {
	status := "success"
	if err != nil {
		status = "error"
		p.logger.WithError(err).Errorf("Failed to publish %d actions to Kafka topic %s", len(messages), p.topic)
	}
	for range messages {
		metrics.RecordKafkaPublish(p.topic, status)
	}
}

// Attach subscribes the publisher to s. Only fulfilled and rejected actions are published.
func (p *Publisher) Attach(s *store.Store) {
	unsubscribe := s.Subscribe(func(action store.Action) {
		if !action.Phase.Settled() {
			return
		}
		if err := p.Publish(context.Background(), action); err != nil {
			p.logger.WithError(err).Errorf("Failed to publish action %s", action.Name())
		}
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.unsubscribes = append(p.unsubscribes, unsubscribe)
}

// Publish writes one action. The message key is the slice so a slice's actions stay ordered.
func (p *Publisher) Publish(ctx context.Context, action store.Action) error {
	value, err := json.Marshal(NewActionMessage(action))
	if err != nil {
		metrics.RecordKafkaPublish(p.topic, "error")
		return fmt.Errorf("failed to marshal action: %w", err)
	}

	headers := []kafka.Header{
		{Key: "action_type", Value: []byte(action.Type)},
		{Key: "phase", Value: []byte(action.Phase)},
	}
	if action.TraceID != "" {
		headers = append(headers, kafka.Header{Key: "trace_id", Value: []byte(action.TraceID)})
	}

	msg := kafka.Message{
		Key:     []byte(action.Slice),
		Value:   value,
		Headers: headers,
		Time:    time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.RecordKafkaPublish(p.topic, "error")
		return fmt.Errorf("failed to write to Kafka topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *Publisher) GetName() string     { return "kafka-actions" }
func (p *Publisher) DependsOn() []string { return nil }

// Start checks that the first broker accepts connections
func (p *Publisher) Start(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka at %s: %w", p.brokers[0], err)
	}
	_ = conn.Close()

	p.logger.Infof("Publishing store actions to Kafka topic %s", p.topic)
	return nil
}

// Stop detaches from every store and flushes pending writes
func (p *Publisher) Stop(_ context.Context) error {
	p.mu.Lock()
	unsubscribes := p.unsubscribes
	p.unsubscribes = nil
	p.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
	return p.writer.Close()
}
