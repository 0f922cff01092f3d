package parameter

import "time"

// Frame streaming
const (
	// ReplicateSendBuffer is the number of frames queued per client before it is dropped as too slow
	ReplicateSendBuffer = 64
	// ReplicateWriteWait bounds a single websocket write
	ReplicateWriteWait = time.Second
	// ReplicatePingInterval is the keepalive period; clients silent for twice as long are closed
	ReplicatePingInterval = 2 * time.Second
)
