package dictionary

import "sort"

// AutomatonNode is one flattened trie node. EdgesIdx/EdgesLen and
// OutputsIdx/OutputsLen are windows into the automaton's global Edges and
// Outputs arrays, an index-instead-of-pointer layout that keeps the whole
// automaton mmap-able as flat arrays.
type AutomatonNode struct {
	EdgesIdx   uint32
	EdgesLen   uint32
	Fail       int32
	OutputsIdx uint32
	OutputsLen uint32
}

// AutomatonEdge is one labeled trie transition. Edges belonging to one node
// occupy a contiguous, Byte-ascending window of the global edge array, so a
// child lookup is a binary search over that window.
type AutomatonEdge struct {
	Byte int32
	Node int32
}

// Automaton is a byte-wise Aho-Corasick multi-pattern matcher. It reports
// match offsets in bytes, landing only on rune boundaries for valid UTF-8
// patterns against valid UTF-8 text, while running over bytes internally.
type Automaton struct {
	Nodes       []AutomatonNode
	Edges       []AutomatonEdge
	Outputs     []int32 // pattern indices, flattened per node (own + fail-chain)
	PatternLens []int32 // byte length of each pattern, indexed by pattern id
}

// Match is one overlapping match produced by Walk.
type Match struct {
	Pattern int
	Start   int
	End     int
}

// BuildAutomaton constructs an Automaton over a set of distinct patterns.
// Pattern index i becomes Aho-Corasick pattern id i, so that TokenDictionary
// bucket index and AC pattern index stay aligned.
func BuildAutomaton(patterns []string) *Automaton {
	type buildNode struct {
		children map[byte]int
		fail     int
		patterns []int32
	}

	nodes := []buildNode{{children: map[byte]int{}}}
	for pi, p := range patterns {
		cur := 0
		for i := 0; i < len(p); i++ {
			b := p[i]
			next, ok := nodes[cur].children[b]
			if !ok {
				nodes = append(nodes, buildNode{children: map[byte]int{}})
				next = len(nodes) - 1
				nodes[cur].children[b] = next
			}
			cur = next
		}
		nodes[cur].patterns = append(nodes[cur].patterns, int32(pi))
	}

	// BFS to assign fail links (goto/failure function construction).
	var bfsOrder []int
	var queue []int
	for _, child := range nodes[0].children {
		nodes[child].fail = 0
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		bfsOrder = append(bfsOrder, u)
		for b, v := range nodes[u].children {
			queue = append(queue, v)
			f := nodes[u].fail
			for f != 0 {
				if nv, ok := nodes[f].children[b]; ok {
					f = nv
					break
				}
				f = nodes[f].fail
			}
			if f == 0 {
				if nv, ok := nodes[0].children[b]; ok && nv != v {
					f = nv
				}
			}
			nodes[v].fail = f
		}
	}

	// Flatten per-node outputs: own patterns plus the fail-chain's outputs,
	// precomputed so matching never walks the fail chain at lookup time.
	mergedOutputs := make([][]int32, len(nodes))
	mergedOutputs[0] = nodes[0].patterns
	for _, u := range bfsOrder {
		merged := append([]int32(nil), nodes[u].patterns...)
		merged = append(merged, mergedOutputs[nodes[u].fail]...)
		mergedOutputs[u] = merged
	}

	a := &Automaton{
		Nodes:       make([]AutomatonNode, len(nodes)),
		PatternLens: make([]int32, len(patterns)),
	}
	for i, p := range patterns {
		a.PatternLens[i] = int32(len(p))
	}

	for i, n := range nodes {
		edgeStart := len(a.Edges)
		bytes := make([]byte, 0, len(n.children))
		for b := range n.children {
			bytes = append(bytes, b)
		}
		sort.Slice(bytes, func(x, y int) bool { return bytes[x] < bytes[y] })
		for _, b := range bytes {
			a.Edges = append(a.Edges, AutomatonEdge{Byte: int32(b), Node: int32(n.children[b])})
		}

		outStart := len(a.Outputs)
		a.Outputs = append(a.Outputs, mergedOutputs[i]...)

		a.Nodes[i] = AutomatonNode{
			EdgesIdx:   uint32(edgeStart),
			EdgesLen:   uint32(len(a.Edges) - edgeStart),
			Fail:       int32(n.fail),
			OutputsIdx: uint32(outStart),
			OutputsLen: uint32(len(a.Outputs) - outStart),
		}
	}

	return a
}

// child performs the binary search over one node's sorted edge window.
func (a *Automaton) child(node int32, b byte) (int32, bool) {
	n := a.Nodes[node]
	if n.EdgesLen == 0 {
		return 0, false
	}
	window := a.Edges[n.EdgesIdx : n.EdgesIdx+n.EdgesLen]
	i := sort.Search(len(window), func(i int) bool { return window[i].Byte >= int32(b) })
	if i < len(window) && window[i].Byte == int32(b) {
		return window[i].Node, true
	}
	return 0, false
}

// goTo follows the goto function: child edge if present, else fall back
// through fail links until one matches or the root is reached.
func (a *Automaton) goTo(node int32, b byte) int32 {
	for {
		if next, ok := a.child(node, b); ok {
			return next
		}
		if node == 0 {
			return 0
		}
		node = a.Nodes[node].Fail
	}
}

// Walk invokes fn once per overlapping match of the automaton's patterns in
// text, in left-to-right end-position order. Among matches that share an end
// position, the longest comes first, followed by the shorter suffix matches
// along the fail chain; callers should not depend on it.
func (a *Automaton) Walk(text []byte, fn func(Match)) {
	if len(a.Nodes) == 0 {
		return
	}
	var cur int32
	for i := 0; i < len(text); i++ {
		cur = a.goTo(cur, text[i])
		n := a.Nodes[cur]
		for _, pid := range a.Outputs[n.OutputsIdx : n.OutputsIdx+n.OutputsLen] {
			end := i + 1
			start := end - int(a.PatternLens[pid])
			fn(Match{Pattern: int(pid), Start: start, End: end})
		}
	}
}
