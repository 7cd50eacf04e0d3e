package domain

// StreamUnionEvents is the default stream union lifecycle events go to.
const StreamUnionEvents = "stream:union:events"

// StreamMessage is one entry read from a Redis stream.
type StreamMessage struct {
	ID   string
	Data map[string]interface{}
}
