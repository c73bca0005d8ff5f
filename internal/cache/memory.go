package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process page cache holding at most size bodies, each for
// ttl. It lives as long as the process, so it only pays off in serve mode.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, url string) ([]byte, bool) {
	return m.lru.Get(url)
}

func (m *Memory) Set(_ context.Context, url string, body []byte) {
	m.lru.Add(url, body)
}

func (m *Memory) Len() int { return m.lru.Len() }
