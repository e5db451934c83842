package service

import (
	"math/rand"
	"strings"
)

// DefaultMapPool is the stock competitive rotation.
var DefaultMapPool = []string{
	"Santos", "Pinnacle", "Power Station", "Dig Site", "Foundation", "Maelstrom", "Lobby",
}

// MapPicker selects the maps for a match that is going live. Injected so
// tests can pin the selection.
type MapPicker interface {
	Pick(n int) []string
}

type randomMapPicker struct {
	pool []string
	rng  *rand.Rand
}

// NewRandomMapPicker picks without replacement from pool.
func NewRandomMapPicker(pool []string, seed int64) MapPicker {
	return &randomMapPicker{pool: pool, rng: rand.New(rand.NewSource(seed))}
}

func (p *randomMapPicker) Pick(n int) []string {
	if n > len(p.pool) {
		n = len(p.pool)
	}
	perm := p.rng.Perm(len(p.pool))
	picked := make([]string, 0, n)
	for _, i := range perm[:n] {
		picked = append(picked, p.pool[i])
	}
	return picked
}

func joinMaps(maps []string) string {
	return strings.Join(maps, ",")
}

// SplitMaps is the inverse of the comma-joined maps column.
func SplitMaps(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
