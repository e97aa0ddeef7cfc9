package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrResourceCycle is returned when a dependency cycle between
	// resources is found. It always indicates a misconfiguration of the
	// relation calculators set on a Component's resources: two resources
	// each insist on rendering before the other, directly or through other
	// resources.
	ErrResourceCycle = errors.New("resource cycle detected")
)

// ResourceRelationship is returned by relation calculators to decide the
// order two resources are rendered in.
type ResourceRelationship string

const (
	// ResourceRelationshipAfter renders the resource after the one it's
	// compared to.
	ResourceRelationshipAfter ResourceRelationship = "after"

	// ResourceRelationshipBefore renders the resource before the one it's
	// compared to.
	ResourceRelationshipBefore ResourceRelationship = "before"

	// ResourceRelationshipNeutral puts no constraint on the pair. Prefer
	// leaving the calculator nil when it would always return this.
	ResourceRelationshipNeutral ResourceRelationship = "neutral"
)

// resource is a CSS or JavaScript resource that can be ordered in a graph.
type resource interface {
	// key identifies the resource; two resources with the same key are
	// the same resource and only rendered once.
	key() string

	// linked reports whether the resource is loaded from a URL rather
	// than embedded. Linked resources sort before embedded ones when
	// nothing else decides their order.
	linked() bool

	// implicit reports whether the resource depends on the previous
	// resource of its group.
	implicit() bool

	// relationTo reports whether the resource must render before or
	// after the other resource.
	relationTo(ctx context.Context, other resource) ResourceRelationship

	// html wraps the rendered body of the resource in its element.
	html(body string) string
}

// graph is a directed acyclic graph of resources. Nodes point to their
// dependencies and dependencies are always walked first; if there's an edge
// from 1 to 2, 2 appears before 1 when walking the graph.
type graph struct {
	nodes []resource

	// edgesFrom is keyed by the position of the node doing the pointing;
	// its values are the dependencies of that node.
	edgesFrom map[int]map[int]struct{}

	// edgesTo is keyed by the position of the dependency; its values are
	// the nodes depending on it.
	edgesTo map[int]map[int]struct{}
}

func newGraph() *graph {
	return &graph{
		edgesFrom: map[int]map[int]struct{}{},
		edgesTo:   map[int]map[int]struct{}{},
	}
}

// buildGraph creates a graph containing every resource in groups, with all
// their dependencies computed.
//
// Each resource has an implicit dependency on the previous resource of its
// group, so the order a Component returned its resources in is preserved,
// unless the resource opts out by setting a relation calculator or
// DisableImplicitOrdering. Resources already in the graph are skipped.
func buildGraph(ctx context.Context, groups [][]resource) *graph {
	g := newGraph()
	for _, group := range groups {
		last := -1
		for _, res := range group {
			if g.index(res) >= 0 {
				continue
			}
			g.nodes = append(g.nodes, res)
			if !res.implicit() {
				continue
			}
			this := len(g.nodes) - 1
			if last >= 0 {
				g.addEdge(this, last)
			}
			last = this
		}
	}
	for pos, res := range g.nodes {
		for compPos, comparison := range g.nodes {
			if pos == compPos {
				continue
			}
			switch res.relationTo(ctx, comparison) {
			case ResourceRelationshipAfter:
				g.addEdge(pos, compPos)
			case ResourceRelationshipBefore:
				g.addEdge(compPos, pos)
			case ResourceRelationshipNeutral:
				// no dependency
			}
		}
	}
	return g
}

func (g *graph) index(res resource) int {
	return slices.IndexFunc(g.nodes, func(existing resource) bool {
		return existing.key() == res.key()
	})
}

// addEdge records that node depends on dep.
func (g *graph) addEdge(node, dep int) {
	if g.edgesFrom[node] == nil {
		g.edgesFrom[node] = map[int]struct{}{}
	}
	if g.edgesTo[dep] == nil {
		g.edgesTo[dep] = map[int]struct{}{}
	}
	g.edgesFrom[node][dep] = struct{}{}
	g.edgesTo[dep][node] = struct{}{}
}

// compareResources breaks ties between resources that are ready at the same
// time: links first, then by key.
func compareResources(a, b resource) int {
	if a.linked() != b.linked() {
		if a.linked() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.key(), b.key())
}

// walk returns the nodes of the graph in dependency order. It consumes the
// graph's edges.
func (g *graph) walk(_ context.Context) ([]resource, error) {
	ready := make([]int, 0, len(g.nodes))
	results := make([]resource, 0, len(g.nodes))
	for pos := range g.nodes {
		if len(g.edgesFrom[pos]) < 1 {
			delete(g.edgesFrom, pos)
			ready = append(ready, pos)
		}
	}
	sortReady := func() {
		slices.SortFunc(ready, func(a, b int) int {
			return compareResources(g.nodes[a], g.nodes[b])
		})
	}
	sortReady()
	for len(ready) > 0 {
		pos := ready[0]
		ready = ready[1:]
		results = append(results, g.nodes[pos])
		var changed bool
		for child := range g.edgesTo[pos] {
			delete(g.edgesFrom[child], pos)
			if len(g.edgesFrom[child]) < 1 {
				delete(g.edgesFrom, child)
				ready = append(ready, child)
				changed = true
			}
		}
		delete(g.edgesTo, pos)
		if changed {
			sortReady()
		}
	}
	if len(g.edgesFrom) > 0 {
		return results, g.cycleError()
	}
	return results, nil
}

func (g *graph) cycleError() error {
	var edges, ids []string
	for node, deps := range g.edgesFrom {
		var vals []string
		for dep := range deps {
			vals = append(vals, strconv.Itoa(dep))
		}
		slices.Sort(vals)
		edges = append(edges, fmt.Sprintf("%d:%s", node, strings.Join(vals, ",")))
	}
	slices.Sort(edges)
	for _, node := range g.nodes {
		ids = append(ids, node.key())
	}
	return fmt.Errorf("%w: edges_from=[%s], resources=[%s]", ErrResourceCycle, strings.Join(edges, "; "), strings.Join(ids, ", "))
}
