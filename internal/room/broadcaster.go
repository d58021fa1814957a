package room

// Broadcaster delivers room events to connected clients. Delivery is
// fire-and-forget: implementations log failures, the registry never sees them.
type Broadcaster interface {
	Broadcast(roomID string, event string, data interface{})
	SendToPlayer(playerID string, event string, data interface{})
}
