package kafka

// Топики доменных событий CRM. События каждого агрегата идут в свой топик,
// неопубликованные после всех попыток сообщения попадают в DLQ.
const (
	TopicCustomerEvents  = "crm.customer.events"
	TopicProductEvents   = "crm.product.events"
	TopicOrderEvents     = "crm.order.events"
	TopicDeadLetterQueue = "crm.dlq"
)

// topicByAggregate направляет события в топик своего агрегата.
var topicByAggregate = map[string]string{
	"customer": TopicCustomerEvents,
	"product":  TopicProductEvents,
	"order":    TopicOrderEvents,
}

// TopicForAggregate возвращает топик для данного типа агрегата.
// Неизвестные агрегаты попадают в топик заказов как общий поток.
func TopicForAggregate(aggregateType string) string {
	if topic, ok := topicByAggregate[aggregateType]; ok {
		return topic
	}
	return TopicOrderEvents
}
