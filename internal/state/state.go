// Package state holds small mutable values shared across requests: the usage
// counter and per-user profession preferences.
package state

import (
	"math"
	"strconv"
	"sync"

	"repurpose/internal/ai"
)

// Store is a string key/value store
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// FreeLimitMinutes is the usage allowance reported by Usage
const FreeLimitMinutes = 1000

const usageKey = "usage:minutes"

// UsageMeter counts processed audio minutes. Add is read-modify-write on the
// store, concurrent callers may lose increments.
type UsageMeter struct {
	store Store
}

func NewUsageMeter(s Store) *UsageMeter {
	return &UsageMeter{store: s}
}

// AddAudio charges one minute per started MiB of audio
func (u *UsageMeter) AddAudio(sizeBytes int64) {
	if sizeBytes <= 0 {
		return
	}
	minutes := int(math.Ceil(float64(sizeBytes) / (1 << 20)))
	u.store.Set(usageKey, strconv.Itoa(u.Minutes()+minutes))
}

func (u *UsageMeter) Minutes() int {
	v, ok := u.store.Get(usageKey)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// Usage is the usage report served to clients
type Usage struct {
	Usage            float64 `json:"usage"`
	FreeLimit        int     `json:"freeLimit"`
	UsedMinutes      int     `json:"usedMinutes"`
	RemainingMinutes int     `json:"remainingMinutes"`
}

func (u *UsageMeter) Report() Usage {
	used := u.Minutes()
	return Usage{
		Usage:            math.Min(float64(used)/FreeLimitMinutes*100, 100),
		FreeLimit:        FreeLimitMinutes,
		UsedMinutes:      used,
		RemainingMinutes: max(0, FreeLimitMinutes-used),
	}
}

// Professions stores each user's chosen profession
type Professions struct {
	store Store
}

func NewProfessions(s Store) *Professions {
	return &Professions{store: s}
}

// Get returns the user's profession or ai.DefaultProfession
func (p *Professions) Get(userID string) string {
	if v, ok := p.store.Get("profession:" + userID); ok && v != "" {
		return v
	}
	return ai.DefaultProfession
}

func (p *Professions) Set(userID, profession string) {
	p.store.Set("profession:"+userID, profession)
}
