package registry

import (
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/dolthub/swiss"
	"github.com/viant/jmapper/mapper"
)

const initialShardSize = 8

// shard holds a subset of published mappers with its own lock.
type shard struct {
	mux     sync.RWMutex
	mappers *swiss.Map[mapper.ID, *mapper.Mapper]
}

// shards splits the identifier map to reduce lock contention.
type shards struct {
	items []*shard
	count uint32
}

func newShards(shardCount int) *shards {
	if shardCount < 1 {
		shardCount = 1
	}
	s := &shards{
		items: make([]*shard, shardCount),
		count: uint32(shardCount),
	}
	for i := 0; i < shardCount; i++ {
		s.items[i] = &shard{mappers: swiss.NewMap[mapper.ID, *mapper.Mapper](initialShardSize)}
	}
	return s
}

// shard chooses a shard based on the hash of the identifier.
func (s *shards) shard(id mapper.ID) *shard {
	h := fnv.New32a()
	h.Write([]byte(strconv.Itoa(int(id))))
	return s.items[h.Sum32()%s.count]
}

func (s *shards) get(id mapper.ID) (*mapper.Mapper, bool) {
	sh := s.shard(id)
	sh.mux.RLock()
	defer sh.mux.RUnlock()
	return sh.mappers.Get(id)
}

// putIfAbsent publishes m unless id already has a mapper, the published one is returned.
func (s *shards) putIfAbsent(id mapper.ID, m *mapper.Mapper) *mapper.Mapper {
	sh := s.shard(id)
	sh.mux.Lock()
	defer sh.mux.Unlock()
	if existing, ok := sh.mappers.Get(id); ok {
		return existing
	}
	sh.mappers.Put(id, m)
	return m
}

// len returns the total number of mappers across all shards.
func (s *shards) len() int {
	total := 0
	for _, sh := range s.items {
		sh.mux.RLock()
		total += sh.mappers.Count()
		sh.mux.RUnlock()
	}
	return total
}

func (s *shards) ids() []mapper.ID {
	var result []mapper.ID
	for _, sh := range s.items {
		sh.mux.RLock()
		sh.mappers.Iter(func(id mapper.ID, _ *mapper.Mapper) bool {
			result = append(result, id)
			return false
		})
		sh.mux.RUnlock()
	}
	return result
}
