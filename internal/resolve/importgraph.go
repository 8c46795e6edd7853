package resolve

// gatherAllPubImports computes the set of module paths visible from start:
// start's own direct imports (visible regardless of their own public flag —
// that flag only governs whether start's *importers* see through to them),
// expanded transitively through public-only re-export edges beyond the
// first hop (§4.4 step 2, §9 "Import visibility graph").
//
// The traversal is an iterative BFS over a visited set, which memoizes
// naturally against diamond-shaped module graphs within one call and across
// calls via importCache, and which cannot loop forever on a cyclic
// public-import subgraph since a module is never re-queued once visited.
func (r *Resolver) gatherAllPubImports(start []string) map[string]bool {
	key := modKey(start)
	if cached, ok := r.importCache[key]; ok {
		return cached
	}

	visited := make(map[string]bool)
	queue := make([]string, 0)

	for _, imp := range r.importsMap[key] {
		t := modKey(imp.Path)
		if t == key || visited[t] {
			continue
		}
		visited[t] = true
		queue = append(queue, t)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, imp := range r.importsMap[cur] {
			if !imp.IsPublic {
				continue
			}
			t := modKey(imp.Path)
			if t == key || visited[t] {
				continue
			}
			visited[t] = true
			queue = append(queue, t)
		}
	}

	r.importCache[key] = visited
	return visited
}
