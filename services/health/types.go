package health

// Service logs a periodic heartbeat with the number of connected subscribers.
type Service interface {
	Beat()
}

type Impl struct {
	subscribers func() int
	connected   func() bool
}
