package httpclient

import (
	"net/http"
	"sync"
	"time"
)

// DefaultTimeout bounds every outbound provider call.
const DefaultTimeout = 30 * time.Second

// Pool hands out HTTP clients that share one keep-alive transport
type Pool struct {
	clients   chan *http.Client
	transport *http.Transport
	timeout   time.Duration
	mu        sync.RWMutex
	closed    bool
}

// NewPool creates a pool of size clients with the given timeout
func NewPool(size int, timeout time.Duration) *Pool {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	pool := &Pool{
		clients: make(chan *http.Client, size),
		transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		timeout: timeout,
	}

	for i := 0; i < size; i++ {
		pool.clients <- pool.newClient()
	}

	return pool
}

func (p *Pool) newClient() *http.Client {
	return &http.Client{Timeout: p.timeout, Transport: p.transport}
}

// Get retrieves a client, creating one when the pool is empty or closed
func (p *Pool) Get() *http.Client {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return p.newClient()
	}

	select {
	case client := <-p.clients:
		return client
	default:
		return p.newClient()
	}
}

// Put returns a client to the pool
func (p *Pool) Put(client *http.Client) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed || client == nil {
		return
	}

	select {
	case p.clients <- client:
	default:
		// full
	}
}

// Close stops pooling and drops idle connections
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.clients)
	p.transport.CloseIdleConnections()
}

var (
	globalPool *Pool
	once       sync.Once
)

// GetGlobalPool returns the process-wide pool used by outbound senders
func GetGlobalPool() *Pool {
	once.Do(func() {
		globalPool = NewPool(10, DefaultTimeout)
	})
	return globalPool
}
