package service

import (
	"math/rand"
	"sync"
	"time"
)

// ImageChooser picks a fallback image for projects submitted without an
// upload. It is an interface so tests can substitute a deterministic
// stub.
type ImageChooser interface {
	Choose(pool []string) string
}

type randChooser struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandChooser returns a chooser that picks uniformly at random.
func NewRandChooser() ImageChooser {
	return &randChooser{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (c *randChooser) Choose(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return pool[c.rnd.Intn(len(pool))]
}
