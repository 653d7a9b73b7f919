// ABOUTME: GraphViz generation for the deal pipeline and customer accounts
// ABOUTME: Renders DOT source from a snapshot of the session collections
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
)

// GraphGenerator draws graphs from one snapshot of the store.
type GraphGenerator struct {
	data metrics.Collections
	fmt  *present.Formatter
}

func NewGraphGenerator(data metrics.Collections, f *present.Formatter) *GraphGenerator {
	return &GraphGenerator{data: data, fmt: f}
}

// stageFill maps tag colors to GraphViz fill colors.
var stageFill = map[string]string{
	"gray":   "lightgray",
	"blue":   "lightblue",
	"yellow": "lightyellow",
	"orange": "orange",
	"green":  "lightgreen",
	"red":    "salmon",
}

// GeneratePipelineGraph chains the six stages left to right and hangs each
// deal off its stage, with the owning customer pointing at the deal.
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context) (string, error) {
	return g.render(ctx, "Deal Pipeline", func(graph *cgraph.Graph) error {
		graph.SetRankDir(cgraph.LRRank)

		stageNodes := make(map[models.Stage]*cgraph.Node, len(models.Stages))
		var prev *cgraph.Node
		for _, col := range metrics.StageBreakdown(g.data.Deals) {
			tag := present.StageTag(col.Stage)
			node, err := graph.CreateNodeByName("stage_" + string(col.Stage))
			if err != nil {
				return fmt.Errorf("failed to create stage node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%d deals\n%s", tag.Label, col.Count, g.money(col.Amount, g.fmt.BaseCurrency)))
			node.SetShape("box")
			node.SetStyle("filled")
			node.SetFillColor(stageFill[tag.Color])
			stageNodes[col.Stage] = node

			if prev != nil {
				edge, err := graph.CreateEdgeByName("next", prev, node)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetStyle("bold")
			}
			prev = node
		}

		customerNodes, err := g.customerNodes(graph)
		if err != nil {
			return err
		}

		for _, deal := range g.data.Deals {
			node, err := g.dealNode(graph, deal)
			if err != nil {
				return err
			}
			if stageNode, ok := stageNodes[deal.Stage]; ok {
				edge, err := graph.CreateEdgeByName("in_stage", stageNode, node)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetStyle("dashed")
			}
			if custNode, ok := customerNodes[deal.CustomerID]; ok {
				edge, err := graph.CreateEdgeByName("deal_with", custNode, node)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetLabel("deal")
			}
		}
		return nil
	})
}

// GenerateAccountGraph shows one customer with its contacts and deals.
func (g *GraphGenerator) GenerateAccountGraph(ctx context.Context, customerID string) (string, error) {
	var customer *models.Customer
	for i := range g.data.Customers {
		if g.data.Customers[i].ID == customerID {
			customer = &g.data.Customers[i]
			break
		}
	}
	if customer == nil {
		return "", fmt.Errorf("customer %s not found", customerID)
	}

	return g.render(ctx, customer.Name, func(graph *cgraph.Graph) error {
		custNode, err := g.customerNode(graph, *customer)
		if err != nil {
			return err
		}

		contactNodes := make(map[string]*cgraph.Node)
		for _, contact := range g.data.Contacts {
			if contact.CustomerID != customerID {
				continue
			}
			node, err := graph.CreateNodeByName("contact_" + contact.ID)
			if err != nil {
				return fmt.Errorf("failed to create contact node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s", contact.FullName(), contact.Position))
			node.SetShape("ellipse")
			node.SetStyle("filled")
			node.SetFillColor("lightgreen")
			contactNodes[contact.ID] = node

			edge, err := graph.CreateEdgeByName("works_at", node, custNode)
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel("works at")
			edge.SetStyle("dashed")
		}

		for _, deal := range g.data.Deals {
			if deal.CustomerID != customerID {
				continue
			}
			node, err := g.dealNode(graph, deal)
			if err != nil {
				return err
			}
			edge, err := graph.CreateEdgeByName("deal_with", custNode, node)
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel("deal")

			if contactNode, ok := contactNodes[deal.ContactID]; ok {
				edge, err := graph.CreateEdgeByName("contact_for", contactNode, node)
				if err != nil {
					return fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetLabel("contact")
				edge.SetStyle("dotted")
			}
		}
		return nil
	})
}

func (g *GraphGenerator) render(ctx context.Context, label string, build func(*cgraph.Graph) error) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel(label)
	if err := build(graph); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func (g *GraphGenerator) customerNodes(graph *cgraph.Graph) (map[string]*cgraph.Node, error) {
	nodes := make(map[string]*cgraph.Node, len(g.data.Customers))
	for _, c := range g.data.Customers {
		node, err := g.customerNode(graph, c)
		if err != nil {
			return nil, err
		}
		nodes[c.ID] = node
	}
	return nodes, nil
}

func (g *GraphGenerator) customerNode(graph *cgraph.Graph, c models.Customer) (*cgraph.Node, error) {
	node, err := graph.CreateNodeByName("customer_" + c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer node: %w", err)
	}
	node.SetLabel(fmt.Sprintf("%s\n(%s)", c.Name, c.Status))
	node.SetShape("box")
	node.SetStyle("filled")
	node.SetFillColor("lightblue")
	return node, nil
}

func (g *GraphGenerator) dealNode(graph *cgraph.Graph, d models.Deal) (*cgraph.Node, error) {
	node, err := graph.CreateNodeByName("deal_" + d.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create deal node: %w", err)
	}
	node.SetLabel(fmt.Sprintf("%s\n%s\n%d%%", d.Title, g.money(d.Amount, d.Currency), d.Probability))
	node.SetShape("diamond")
	node.SetStyle("filled")
	node.SetFillColor("lightyellow")
	return node, nil
}

func (g *GraphGenerator) money(amount float64, code string) string {
	s, err := g.fmt.CompactCurrency(amount, code)
	if err != nil {
		return present.Fallback
	}
	return s
}
