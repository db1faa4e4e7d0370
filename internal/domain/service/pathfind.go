package service

import (
	"sync"

	"github.com/cashroute/cashroute/internal/domain/model"
)

type pathKey struct {
	source string
	target string
}

// PathCache memoizes discovered paths per (source, target) pair. It is safe
// for concurrent use. A cache only stays valid for one transfer matrix;
// callers that change the matrix must Clear it or use a fresh cache per
// request.
type PathCache struct {
	mu    sync.RWMutex
	paths map[pathKey][]model.TransferRelationship
}

// NewPathCache creates an empty PathCache.
func NewPathCache() *PathCache {
	return &PathCache{paths: make(map[pathKey][]model.TransferRelationship)}
}

func (c *PathCache) get(source, target string) ([]model.TransferRelationship, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, ok := c.paths[pathKey{source: source, target: target}]
	return path, ok
}

func (c *PathCache) put(source, target string, path []model.TransferRelationship) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[pathKey{source: source, target: target}] = path
}

// Clear drops every memoized path.
func (c *PathCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = make(map[pathKey][]model.TransferRelationship)
}

// Len reports how many (source, target) pairs are memoized.
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// PathFinder discovers the shortest hop sequence from accounts to a target
// across the available transfer relationships, memoizing every answer.
type PathFinder struct {
	cache *PathCache
}

// NewPathFinder creates a PathFinder over the given cache. A nil cache gets a
// fresh private one.
func NewPathFinder(cache *PathCache) *PathFinder {
	if cache == nil {
		cache = NewPathCache()
	}
	return &PathFinder{cache: cache}
}

// Cache exposes the finder's memoization cache so callers can reset it
// between matrix versions.
func (f *PathFinder) Cache() *PathCache {
	return f.cache
}

// FindPath returns the relationships of the first shortest path from source
// to target. Unreachable targets yield an empty path, as does the target
// itself. Equal-length paths resolve to discovery order; callers must not
// read anything beyond the length into that choice.
func (f *PathFinder) FindPath(source, target string, matrix []model.TransferRelationship) []model.TransferRelationship {
	if path, ok := f.cache.get(source, target); ok {
		return path
	}
	path := bfs(source, target, matrix)
	f.cache.put(source, target, path)
	return path
}

// MapPaths discovers a path for every distinct account appearing in the
// matrix, keyed by source id.
func (f *PathFinder) MapPaths(target string, matrix []model.TransferRelationship) map[string][]model.TransferRelationship {
	paths := make(map[string][]model.TransferRelationship)
	for _, rel := range matrix {
		for _, id := range [2]string{rel.FromID, rel.ToID} {
			if _, ok := paths[id]; ok {
				continue
			}
			paths[id] = f.FindPath(id, target, matrix)
		}
	}
	return paths
}

// bfs walks the available relationships breadth-first from source, keeping
// edges in matrix order so discovery stays deterministic.
func bfs(source, target string, matrix []model.TransferRelationship) []model.TransferRelationship {
	if source == target {
		return nil
	}

	adjacency := make(map[string][]model.TransferRelationship)
	for _, rel := range matrix {
		if !rel.Available {
			continue
		}
		adjacency[rel.FromID] = append(adjacency[rel.FromID], rel)
	}

	type node struct {
		id   string
		path []model.TransferRelationship
	}

	visited := map[string]bool{source: true}
	queue := []node{{id: source}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, rel := range adjacency[cur.id] {
			if visited[rel.ToID] {
				continue
			}
			path := make([]model.TransferRelationship, len(cur.path)+1)
			copy(path, cur.path)
			path[len(cur.path)] = rel

			if rel.ToID == target {
				return path
			}
			visited[rel.ToID] = true
			queue = append(queue, node{id: rel.ToID, path: path})
		}
	}

	return nil
}
