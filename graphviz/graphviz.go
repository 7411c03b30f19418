// Package graphviz renders a tokenizer lattice as a Graphviz .dot digraph,
// for the "--graph-out" debugging path of the tokenize CLI verb. Ported from
// the original tokenizer's graphviz.rs builder (NodePoint/NodeEdgeInfo,
// add_node/set_optimal/finalize) into a small stdlib-only renderer: no
// third-party Graphviz emitter exists anywhere in the example pack, so this
// package is stdlib-only (see DESIGN.md).
package graphviz

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/steosofficial/gonori/dictionary"
)

// NodePoint is one lattice candidate, keyed by its unique id.
type NodePoint struct {
	TextIndex int
	NodeID    uint32
	TotalCost int32
}

// EdgeInfo is the morpheme data labeling one parent-to-node edge.
type EdgeInfo struct {
	ToLeftID   uint16
	ToRightID  uint16
	ToWordCost int32
	PosTags    []dictionary.POSTag
	Surface    string
}

type edgeKey struct {
	from uint32
	to   uint32
}

// Graph accumulates nodes and edges as the tokenizer walks its lattice, then
// renders them as a single .dot digraph.
type Graph struct {
	nodes   map[uint32]NodePoint
	optimal map[uint32]bool
	edges   map[edgeKey]EdgeInfo
	order   []edgeKey
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[uint32]NodePoint),
		optimal: make(map[uint32]bool),
		edges:   make(map[edgeKey]EdgeInfo),
	}
}

// AddEdge registers both endpoints and the edge connecting them.
func (g *Graph) AddEdge(from, to NodePoint, info EdgeInfo) {
	if _, ok := g.nodes[from.NodeID]; !ok {
		g.nodes[from.NodeID] = from
	}
	if _, ok := g.nodes[to.NodeID]; !ok {
		g.nodes[to.NodeID] = to
	}
	key := edgeKey{from: from.NodeID, to: to.NodeID}
	if _, ok := g.edges[key]; !ok {
		g.order = append(g.order, key)
	}
	g.edges[key] = info
}

// SetOptimal marks a node as lying on the winning Viterbi path, so Render
// fills it green and draws any edge between two optimal nodes bold.
func (g *Graph) SetOptimal(nodeID uint32) {
	g.optimal[nodeID] = true
}

const dotTemplate = `digraph gonori {
	graph [fontsize=30 labelloc="t" label="" splines=true overlap=false rankdir="LR"];
	edge [fontname="Helvetica" fontcolor="red" color="#606060"]
	node [style="filled" fillcolor="#e8e8f0" shape="Mrecord" fontname="Helvetica"]
	init [style=invis]
	init -> {{.InitLabel}} [label="BOS", fontcolor="#7edb79", color="#7edb79", penwidth="3"]
{{range .Nodes}}	{{.Label}} [label="total cost: {{.TotalCost}}"{{if .Optimal}}, fillcolor="#7edb79"{{end}}]
{{end}}{{range .Edges}}	{{.FromLabel}} -> {{.ToLabel}} [label="{{.Label}}"{{if .Bold}}, fontcolor="#7edb79", color="#7edb79", penwidth="3"{{end}}]
{{end}}}
`

type renderNode struct {
	Label     string
	TotalCost int32
	Optimal   bool
}

type renderEdge struct {
	FromLabel string
	ToLabel   string
	Label     string
	Bold      bool
}

type renderData struct {
	InitLabel string
	Nodes     []renderNode
	Edges     []renderEdge
}

func label(n NodePoint) string {
	return fmt.Sprintf("%d_%d", n.TextIndex, n.NodeID)
}

func posTagsLabel(tags []dictionary.POSTag) string {
	if len(tags) == 0 {
		return "None"
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, "+")
}

// Render produces the .dot source for the accumulated graph.
func (g *Graph) Render() (string, error) {
	var nodeIDs []uint32
	for id := range g.nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	data := renderData{}
	if n, ok := g.nodes[0]; ok {
		data.InitLabel = label(n)
	}

	for _, id := range nodeIDs {
		n := g.nodes[id]
		data.Nodes = append(data.Nodes, renderNode{
			Label:     label(n),
			TotalCost: n.TotalCost,
			Optimal:   g.optimal[id],
		})
	}

	for _, key := range g.order {
		info := g.edges[key]
		from := g.nodes[key.from]
		to := g.nodes[key.to]
		edgeLabel := fmt.Sprintf("'%s', left: %d, right: %d, word cost: %d, pos tag: %s",
			info.Surface, info.ToLeftID, info.ToRightID, info.ToWordCost, posTagsLabel(info.PosTags))
		if info.Surface == "EOS" {
			edgeLabel = "EOS"
		}
		data.Edges = append(data.Edges, renderEdge{
			FromLabel: label(from),
			ToLabel:   label(to),
			Label:     edgeLabel,
			Bold:      g.optimal[key.from] && g.optimal[key.to],
		})
	}

	tmpl, err := template.New("dot").Parse(dotTemplate)
	if err != nil {
		return "", fmt.Errorf("parse dot template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render dot template: %w", err)
	}
	return buf.String(), nil
}
