package simplify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/figma"
)

func solidFill(r, g, b float64) figma.Paint {
	return figma.Paint{
		Type:  "SOLID",
		Color: &figma.Color{R: r, G: g, B: b, A: 1},
	}
}

func testFile() *figma.FileResponse {
	return &figma.FileResponse{
		Name:         "Design System",
		LastModified: "2026-01-15T10:00:00Z",
		Document: figma.Node{
			ID:   "0:0",
			Name: "Document",
			Type: "DOCUMENT",
			Children: []figma.Node{
				{
					ID:   "1:1",
					Name: "Page 1",
					Type: "CANVAS",
					Children: []figma.Node{
						{
							ID:    "1:2",
							Name:  "Primary Button",
							Type:  "FRAME",
							Fills: []figma.Paint{solidFill(1, 0, 0)},
							Children: []figma.Node{
								{
									ID:         "1:3",
									Name:       "Label",
									Type:       "TEXT",
									Characters: "Submit",
									Style:      &figma.TypeStyle{FontFamily: "Inter", FontSize: 14},
								},
							},
						},
						{
							ID:    "1:4",
							Name:  "Secondary Button",
							Type:  "FRAME",
							Fills: []figma.Paint{solidFill(1, 0, 0)},
						},
					},
				},
			},
		},
	}
}

// collect flattens the simplified node tree.
func collect(nodes []Node) []Node {
	var all []Node
	for _, n := range nodes {
		all = append(all, n)
		all = append(all, collect(n.Children)...)
	}
	return all
}

func TestSimplifyMetadata(t *testing.T) {
	design := Simplify(testFile(), 0)

	assert.Equal(t, "Design System", design.Name)
	assert.Equal(t, "2026-01-15T10:00:00Z", design.LastModified)
	require.NotEmpty(t, design.Nodes)
	assert.Equal(t, "1:1", design.Nodes[0].ID)
}

func TestSimplifyDeduplicatesIdenticalStyles(t *testing.T) {
	design := Simplify(testFile(), 0)

	var primary, secondary *Node
	for _, n := range collect(design.Nodes) {
		n := n
		switch n.Name {
		case "Primary Button":
			primary = &n
		case "Secondary Button":
			secondary = &n
		}
	}
	require.NotNil(t, primary)
	require.NotNil(t, secondary)

	// Byte-identical fill content resolves to the same shared entry.
	assert.NotEmpty(t, primary.Fills)
	assert.Equal(t, primary.Fills, secondary.Fills)

	fillCount := 0
	for id := range design.GlobalVars.Styles {
		if strings.HasPrefix(string(id), "fill_") {
			fillCount++
		}
	}
	assert.Equal(t, 1, fillCount)
}

func TestSimplifyReferencesResolve(t *testing.T) {
	design := Simplify(testFile(), 0)

	for _, n := range collect(design.Nodes) {
		for _, ref := range []StyleID{n.Fills, n.Strokes, n.Effects, n.Layout, n.TextStyle} {
			if ref == "" {
				continue
			}
			_, ok := design.GlobalVars.Styles[ref]
			assert.True(t, ok, "node %s reference %s must resolve in globalVars", n.ID, ref)
		}
	}
}

func TestSimplifyDepthBound(t *testing.T) {
	unbounded := Simplify(testFile(), 0)
	assert.Len(t, collect(unbounded.Nodes), 4)

	shallow := Simplify(testFile(), 1)
	require.Len(t, shallow.Nodes, 1)
	assert.Empty(t, shallow.Nodes[0].Children)

	two := Simplify(testFile(), 2)
	require.Len(t, two.Nodes, 1)
	require.Len(t, two.Nodes[0].Children, 2)
	assert.Empty(t, two.Nodes[0].Children[0].Children)
}

func TestSimplifyTextExtraction(t *testing.T) {
	design := Simplify(testFile(), 0)

	var label *Node
	for _, n := range collect(design.Nodes) {
		n := n
		if n.Name == "Label" {
			label = &n
		}
	}
	require.NotNil(t, label)
	assert.Equal(t, "Submit", label.Text)
	assert.NotEmpty(t, label.TextStyle)

	style, ok := design.GlobalVars.Styles[label.TextStyle].(TextStyleDef)
	require.True(t, ok)
	assert.Equal(t, "Inter", style.FontFamily)
}

func TestSimplifySkipsInvisiblePaints(t *testing.T) {
	hidden := false
	file := testFile()
	file.Document.Children[0].Children[0].Fills[0].Visible = &hidden

	design := Simplify(file, 0)
	for _, n := range collect(design.Nodes) {
		if n.Name == "Primary Button" {
			assert.Empty(t, n.Fills)
		}
	}
}

func TestSimplifyDoesNotMutateInput(t *testing.T) {
	file := testFile()
	Simplify(file, 0)

	assert.Equal(t, testFile(), file)
}

func TestSimplifyNodes(t *testing.T) {
	resp := &figma.NodesResponse{
		Name: "Design System",
		Nodes: map[string]figma.NodeData{
			"1:2": {Document: figma.Node{ID: "1:2", Name: "Button", Type: "COMPONENT", Fills: []figma.Paint{solidFill(0, 0, 1)}}},
			"1:9": {Document: figma.Node{ID: "1:9", Name: "Card", Type: "FRAME"}},
		},
	}

	design := SimplifyNodes(resp, 0)
	require.Len(t, design.Nodes, 2)
	// Stable order sorted by node id.
	assert.Equal(t, "1:2", design.Nodes[0].ID)
	assert.Equal(t, "1:9", design.Nodes[1].ID)
	assert.NotEmpty(t, design.Nodes[0].Fills)
}

func TestStyleKeyIsContentDerived(t *testing.T) {
	a := styleKey("fill", []Fill{{Type: "SOLID", Hex: "#FF0000", Opacity: 1}})
	b := styleKey("fill", []Fill{{Type: "SOLID", Hex: "#FF0000", Opacity: 1}})
	c := styleKey("fill", []Fill{{Type: "SOLID", Hex: "#00FF00", Opacity: 1}})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(string(a), "fill_"))
}
