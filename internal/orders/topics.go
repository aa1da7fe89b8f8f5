package orders

// Every order mutation goes through a single topic; the event type
// rides in the envelope and the x-event-type header.
const TopicOrderEvents = "order.events"

// Partition key = order_id so all events for one order stay ordered.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
