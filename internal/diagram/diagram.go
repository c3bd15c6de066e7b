// Package diagram builds a labelled directed graph of a model for external
// rendering with Graphviz.
//
// Nodes are styled by role, parameter edges into a distribution carry the
// parameter name, and the edge from a distribution to the node it scores is
// dashed. Rendering the DOT output into an image is left to the caller.
package diagram

import (
	"fmt"
	"slices"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/specialistvlad/gretago/internal/lowering"
	"github.com/specialistvlad/gretago/internal/node"
	"github.com/specialistvlad/gretago/internal/nodeid"
)

const graphName = "model"

// Source is what a diagram is drawn from. *model.Model implements it.
type Source interface {
	Nodes() []*node.Node
	Adjacency() []lowering.Edge
	Label(id nodeid.ID) string
}

// style is the visual treatment of one role.
type style struct {
	shape     string
	fillcolor string
	color     string
	width     string
}

var styles = map[node.Role]style{
	node.Data:         {shape: "square", fillcolor: "#eeeeee", color: "#999999", width: "0.5"},
	node.Variable:     {shape: "circle", fillcolor: "#d3cee2", color: "#8960b3", width: "0.6"},
	node.Operation:    {shape: "circle", fillcolor: "#e0e0e0", color: "#999999", width: "0.2"},
	node.Distribution: {shape: "diamond", fillcolor: "#ddf2d4", color: "#6aa84f", width: "1"},
}

// Build creates the diagram graph of src.
func Build(src Source) (*gographviz.Graph, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}
	if err := g.AddAttr(graphName, "rankdir", "LR"); err != nil {
		return nil, err
	}

	nodes := src.Nodes()
	names := make(map[nodeid.ID]string, len(nodes))
	byID := make(map[nodeid.ID]*node.Node, len(nodes))
	for i, n := range nodes {
		name := fmt.Sprintf("n%d", i+1)
		names[n.ID()] = name
		byID[n.ID()] = n

		st, ok := styles[n.Role()]
		if !ok {
			return nil, fmt.Errorf("no diagram style for role %s of %s", n.Role(), n.ID())
		}
		attrs := map[string]string{
			"label":     quote(src.Label(n.ID())),
			"shape":     st.shape,
			"style":     "filled",
			"fillcolor": quote(st.fillcolor),
			"color":     quote(st.color),
			"width":     st.width,
		}
		if err := g.AddNode(graphName, name, attrs); err != nil {
			return nil, fmt.Errorf("adding node %s: %w", n.Label(), err)
		}
	}

	for _, e := range src.Adjacency() {
		from, okFrom := names[e.From]
		to, okTo := names[e.To]
		if !okFrom || !okTo {
			return nil, fmt.Errorf("edge %s -> %s references a node outside the diagram", e.From, e.To)
		}

		attrs := map[string]string{}
		switch {
		case e.Target:
			attrs["style"] = "dashed"
		case byID[e.To].Role() == node.Distribution:
			if label := paramLabel(byID[e.To], e.From); label != "" {
				attrs["label"] = quote(label)
			}
		}
		if err := g.AddEdge(from, to, true, attrs); err != nil {
			return nil, fmt.Errorf("adding edge %s -> %s: %w", from, to, err)
		}
	}
	return g, nil
}

// DOT renders the diagram of src in the DOT language.
func DOT(src Source) (string, error) {
	g, err := Build(src)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

// paramLabel names the parameters of dist that parent feeds.
func paramLabel(dist *node.Node, parent nodeid.ID) string {
	var names []string
	for name, id := range dist.Params() {
		if id == parent {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
