package client

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// ServerList hands out base URLs in round-robin order. It is safe for
// concurrent use.
type ServerList struct {
	servers []string
	cursor  atomic.Uint64
}

// NewServerList registers the given base URLs. Trailing slashes are trimmed.
func NewServerList(urls ...string) (*ServerList, error) {
	if len(urls) == 0 {
		return nil, ErrNoServers
	}

	servers := make([]string, 0, len(urls))
	for i, u := range urls {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" {
			return nil, fmt.Errorf("server %d: %w", i, ErrNoServers)
		}
		servers = append(servers, u)
	}

	return &ServerList{servers: servers}, nil
}

// Next returns the server for the next request.
func (l *ServerList) Next() string {
	if len(l.servers) == 1 {
		return l.servers[0]
	}
	n := l.cursor.Add(1) - 1
	return l.servers[n%uint64(len(l.servers))]
}

// Servers returns a copy of the registered base URLs.
func (l *ServerList) Servers() []string {
	out := make([]string, len(l.servers))
	copy(out, l.servers)
	return out
}

// Len returns the number of registered servers.
func (l *ServerList) Len() int {
	return len(l.servers)
}
