package sctp

import "time"

// ReadinessTimeout bounds every readiness wait performed by Read and Write
// in blocking mode.
const ReadinessTimeout = 100 * time.Millisecond
