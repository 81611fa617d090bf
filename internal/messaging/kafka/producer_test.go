package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
)

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndSucceed()

	payload := map[string]string{
		"event_type":  "customer.created",
		"customer_id": "customer-123",
		"email":       "alice@example.com",
	}
	if err := producer.PublishEvent(TopicCustomerEvents, "customer-123", payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	payload := map[string]string{
		"event_type": "order.created",
		"order_id":   "order-123",
	}
	err := producer.PublishEvent(TopicOrderEvents, "order-123", payload)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_UnmarshalableEvent(t *testing.T) {
	producer := &Producer{
		producer: mocks.NewSyncProducer(t, nil),
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	// Каналы не сериализуются в JSON: сообщение не должно дойти до брокера.
	if err := producer.PublishEvent(TopicCustomerEvents, "key", make(chan int)); err == nil {
		t.Fatal("expected marshal error, got nil")
	}
}

func TestTopicForAggregate(t *testing.T) {
	cases := []struct {
		aggregate string
		topic     string
	}{
		{"customer", TopicCustomerEvents},
		{"product", TopicProductEvents},
		{"order", TopicOrderEvents},
		{"unknown", TopicOrderEvents},
	}

	for _, tc := range cases {
		if got := TopicForAggregate(tc.aggregate); got != tc.topic {
			t.Errorf("TopicForAggregate(%q) = %q, want %q", tc.aggregate, got, tc.topic)
		}
	}
}
