package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// InstructionCache keeps recently used project system instructions in memory
// so the chat pipeline does not re-read the project row on every turn.
// Entries are invalidated on project update and delete.
type InstructionCache struct {
	cache *cache.Cache
}

func NewInstructionCache() *InstructionCache {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &InstructionCache{
		cache: c,
	}
}

func (r *InstructionCache) Save(projectID string, instruction string) {
	r.cache.Set(projectID, instruction, cache.DefaultExpiration)
}

func (r *InstructionCache) Get(projectID string) (string, bool) {
	if x, found := r.cache.Get(projectID); found {
		return x.(string), true
	}
	return "", false
}

func (r *InstructionCache) Delete(projectID string) {
	r.cache.Delete(projectID)
}
