package events

const (
	TopicInboundManifest  = "stock.inbound.manifest"
	TopicStockReplenished = "stock.replenished"
	TopicStockRejected    = "stock.rejected"
	TopicOutboundShipped  = "outbound.shipped"
)

// PartitionKey keys messages by manifest or request, so the events of one
// shipment stay ordered.
func PartitionKey(id string) []byte { return []byte(id) }
