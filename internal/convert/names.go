package convert

import (
	"fmt"
	"sync"
)

// Names hands out collision-free output basenames. The first claim of a
// slug gets it bare; later claims get a numeric suffix in claim order
// (soup, soup-2, soup-3, ...). The batch engine serializes claims in
// file-discovery order, which makes the suffixes reproducible across
// runs regardless of worker count.
type Names struct {
	mu     sync.Mutex
	counts map[string]int
	used   map[string]bool
}

func NewNames() *Names {
	return &Names{counts: map[string]int{}, used: map[string]bool{}}
}

// Claim reserves and returns a unique basename derived from base.
func (n *Names) Claim(base string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	for {
		n.counts[base]++
		candidate := base
		if n.counts[base] > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n.counts[base])
		}
		// A recipe literally named like a suffixed slug can still
		// collide; keep counting until the name is free.
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
}
