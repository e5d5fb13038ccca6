package engine

import "github.com/tburgert/circuitry/internal/geom"

// propagate computes the full set of points reachable from the sources by
// breadth-first traversal of the adjacency mapping.
//
// Sources are always included, even when absent from the graph: a source is
// on at its own point regardless of wiring. The result depends only on the
// graph and the source set, not on traversal order.
func propagate(g graph, sources []geom.Point) pointSet {
	reached := make(pointSet, len(sources))
	queue := make([]geom.Point, 0, len(sources))

	for _, p := range sources {
		if !reached.has(p) {
			reached[p] = struct{}{}
			queue = append(queue, p)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range g[current] {
			if !reached.has(neighbor) {
				reached[neighbor] = struct{}{}
				queue = append(queue, neighbor)
			}
		}
	}

	return reached
}
