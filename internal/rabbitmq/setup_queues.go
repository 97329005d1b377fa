package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для привязки к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAuditQueues возвращает очереди, в которые попадают события аудита.
func GetAuditQueues(routingKey string) []QueueConfig {
	return []QueueConfig{
		{QueueName: "gym.audit.events", RoutingKey: routingKey},
	}
}
