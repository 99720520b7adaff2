// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"

	"folio-go/internal/config"
	"folio-go/pkg/events"
	"folio-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// EventProcessor 定义了能够处理留言事件的服务接口。
// 该接口将消费者与具体的通知管道实现解耦。
type EventProcessor interface {
	Process(ctx context.Context, event events.MessageReceivedEvent) error
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// Producer 是包级生产者的薄包装，便于服务层通过接口注入替身。
type Producer struct{}

// NewProducer 创建一个新的 Producer 实例，须在 InitProducer 之后调用。
func NewProducer() *Producer {
	return &Producer{}
}

// ProduceMessageEvent 发送一个留言事件到 Kafka。
func (p *Producer) ProduceMessageEvent(event events.MessageReceivedEvent) error {
	return ProduceMessageEvent(event)
}

// ProduceMessageEvent 发送一个留言事件到 Kafka。
func ProduceMessageEvent(event events.MessageReceivedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return producer.WriteMessages(context.Background(),
		kafka.Message{
			Value: eventBytes,
		},
	)
}

// StartConsumer 启动一个 Kafka 消费者来处理留言事件。
func StartConsumer(cfg config.KafkaConfig, processor EventProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  "folio-go-consumer",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(context.Background())
		if err != nil {
			log.Error("从 Kafka 读取消息失败", err)
			break
		}

		var event events.MessageReceivedEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(m.Value))
			// 消息格式错误，直接提交，避免阻塞队列
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("提交错误消息失败: %v", err)
			}
			continue
		}

		log.Infof("开始处理留言事件: messageID=%d", event.MessageID)
		if err := processor.Process(context.Background(), event); err != nil {
			// 通知失败不重试：留言本身已落库，管理后台仍可见
			log.Errorf("处理留言事件失败: messageID=%d, error: %v", event.MessageID, err)
		}
		if err := r.CommitMessages(context.Background(), m); err != nil {
			log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
		}
	}

	if err := r.Close(); err != nil {
		log.Fatalf("关闭 Kafka 消费者失败: %v", err)
	}
}
