// SPDX-License-Identifier: GPL-3.0-or-later
package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func newTestStore() (*Store, *clock) {
	c := &clock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	s := NewStore()
	s.now = c.Now
	return s, c
}

func TestAllow(t *testing.T) {
	s, c := newTestStore()

	for i := 0; i < 3; i++ {
		allowed, retry := s.Allow("login:ip:1.2.3.4", 3, time.Minute)
		assert.True(t, allowed)
		assert.Equal(t, time.Duration(0), retry)
	}

	c.now = c.now.Add(20 * time.Second)
	allowed, retry := s.Allow("login:ip:1.2.3.4", 3, time.Minute)
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, retry)

	allowed, _ = s.Allow("login:ip:5.6.7.8", 3, time.Minute)
	assert.True(t, allowed)

	c.now = c.now.Add(40 * time.Second)
	allowed, _ = s.Allow("login:ip:1.2.3.4", 3, time.Minute)
	assert.True(t, allowed)
}

func TestClear(t *testing.T) {
	s, _ := newTestStore()

	allowed, _ := s.Allow("key", 1, time.Hour)
	assert.True(t, allowed)
	allowed, _ = s.Allow("key", 1, time.Hour)
	assert.False(t, allowed)

	s.Clear("key")
	allowed, _ = s.Allow("key", 1, time.Hour)
	assert.True(t, allowed)
}

func TestCheckAndHit(t *testing.T) {
	s, c := newTestStore()

	for i := 0; i < 3; i++ {
		allowed, _ := s.Check("smtp_send:me@example.com", 2, time.Hour)
		assert.True(t, allowed)
	}

	s.Hit("smtp_send:me@example.com", time.Hour)
	allowed, _ := s.Check("smtp_send:me@example.com", 2, time.Hour)
	assert.True(t, allowed)

	s.Hit("smtp_send:me@example.com", time.Hour)
	c.now = c.now.Add(15 * time.Minute)
	allowed, retry := s.Check("smtp_send:me@example.com", 2, time.Hour)
	assert.False(t, allowed)
	assert.Equal(t, 45*time.Minute, retry)

	c.now = c.now.Add(45 * time.Minute)
	allowed, _ = s.Check("smtp_send:me@example.com", 2, time.Hour)
	assert.True(t, allowed)
}

func TestSweep(t *testing.T) {
	s, c := newTestStore()

	s.Allow("short", 5, time.Minute)
	s.Allow("long", 5, time.Hour)

	c.now = c.now.Add(2 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Len(t, s.windows, 1)
}

func TestAllow_Concurrent(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := s.Allow("smtp_send:me@example.com", 30, time.Hour)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, allowedCount)
}
