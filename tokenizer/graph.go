package tokenizer

import (
	"github.com/steosofficial/gonori/dictionary"
	"github.com/steosofficial/gonori/graphviz"
)

// TokenizeWithGraph runs the same pipeline as Tokenize but additionally
// accumulates a graphviz.Graph covering the lattice candidates, not just the
// winning path: every node's single chosen parent link becomes one edge
// (candidates whose parent bucket is empty get no edge and do not appear),
// and the nodes on the final back-trace are marked optimal so Render
// highlights them and draws the edges between them bold.
func (t *Tokenizer) TokenizeWithGraph(input string) (Lattice, *graphviz.Graph) {
	buckets, nextID := t.buildLattice(input)
	eosID := nextID + 1
	lattice, pathIDs, endPos := t.backtrace(input, buckets, eosID)

	g := graphviz.New()
	for i := 1; i < len(buckets); i++ {
		for idx := range buckets[i] {
			n := &buckets[i][idx]
			parents := buckets[n.startWithSpace]
			if len(parents) == 0 {
				continue
			}
			parent := parents[n.parentNodeIndex]
			g.AddEdge(
				graphviz.NodePoint{TextIndex: n.startWithSpace, NodeID: parent.uniqueID, TotalCost: parent.totalCost},
				graphviz.NodePoint{TextIndex: i, NodeID: n.uniqueID, TotalCost: n.totalCost},
				graphviz.EdgeInfo{
					ToLeftID:   n.morpheme.LeftID,
					ToRightID:  n.morpheme.RightID,
					ToWordCost: n.morpheme.WordCost,
					PosTags:    n.morpheme.POSTags,
					Surface:    input[n.start:n.end],
				},
			)
		}
	}

	if parents := buckets[endPos]; len(parents) > 0 {
		eosParentIdx, _ := selectParent(parents, dictionary.BOSEOS.LeftID, t.System.ConnectionCost)
		parent := parents[eosParentIdx]
		g.AddEdge(
			graphviz.NodePoint{TextIndex: endPos, NodeID: parent.uniqueID, TotalCost: parent.totalCost},
			graphviz.NodePoint{TextIndex: endPos, NodeID: eosID, TotalCost: parent.totalCost},
			graphviz.EdgeInfo{Surface: "EOS"},
		)
	}

	for _, id := range pathIDs {
		g.SetOptimal(id)
	}

	return lattice, g
}
