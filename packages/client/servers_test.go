package client

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := NewServerList()
		assert.ErrorIs(t, err, ErrNoServers)
	})

	t.Run("blank entry", func(t *testing.T) {
		_, err := NewServerList("http://es1:9200", "  ")
		assert.ErrorIs(t, err, ErrNoServers)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		l, err := NewServerList("http://es1:9200/", "http://es2:9200//")
		require.NoError(t, err)
		assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, l.Servers())
	})
}

func TestServerList_SingleServer(t *testing.T) {
	l, err := NewServerList("http://only:9200")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, "http://only:9200", l.Next())
	}
}

func TestServerList_RoundRobin(t *testing.T) {
	l, err := NewServerList("http://a", "http://b", "http://c")
	require.NoError(t, err)

	var got []string
	for i := 0; i < 6; i++ {
		got = append(got, l.Next())
	}
	assert.Equal(t, []string{"http://a", "http://b", "http://c", "http://a", "http://b", "http://c"}, got)
}

func TestServerList_Concurrent(t *testing.T) {
	servers := []string{"http://a", "http://b", "http://c", "http://d"}
	l, err := NewServerList(servers...)
	require.NoError(t, err)

	const callers = 64
	var (
		mu   sync.Mutex
		seen = make(map[string]int)
		wg   sync.WaitGroup
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := l.Next()
			mu.Lock()
			seen[s]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	total := 0
	for _, s := range servers {
		assert.Positive(t, seen[s], "server %s never chosen", s)
		total += seen[s]
	}
	assert.Equal(t, callers, total)
}

func TestServerList_ServersIsCopy(t *testing.T) {
	l, err := NewServerList("http://a", "http://b")
	require.NoError(t, err)

	s := l.Servers()
	s[0] = "http://mutated"

	assert.Equal(t, "http://a", l.Servers()[0])
	assert.Equal(t, 2, l.Len())
}
