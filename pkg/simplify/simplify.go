// Package simplify transforms raw Figma documents into a flattened
// representation with shared style definitions extracted once.
package simplify

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/figma"
)

// builder accumulates the shared style map during a single walk. A builder
// is used for one document and discarded.
type builder struct {
	vars GlobalVars
}

// Simplify flattens a full file response. maxDepth bounds how deep the node
// tree is descended; zero or negative means unbounded.
func Simplify(fileResp *figma.FileResponse, maxDepth int) *Design {
	b := &builder{vars: GlobalVars{Styles: make(map[StyleID]any)}}

	nodes := make([]Node, 0, len(fileResp.Document.Children))
	for i := range fileResp.Document.Children {
		nodes = append(nodes, b.walk(&fileResp.Document.Children[i], 1, maxDepth))
	}

	return &Design{
		Name:         fileResp.Name,
		LastModified: fileResp.LastModified,
		ThumbnailURL: fileResp.ThumbnailURL,
		Nodes:        nodes,
		GlobalVars:   b.vars,
	}
}

// SimplifyNodes flattens a nodes response (a subtree fetch). Requested nodes
// are emitted in a stable order sorted by node id.
func SimplifyNodes(nodesResp *figma.NodesResponse, maxDepth int) *Design {
	b := &builder{vars: GlobalVars{Styles: make(map[StyleID]any)}}

	ids := make([]string, 0, len(nodesResp.Nodes))
	for id := range nodesResp.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		data := nodesResp.Nodes[id]
		nodes = append(nodes, b.walk(&data.Document, 1, maxDepth))
	}

	return &Design{
		Name:         nodesResp.Name,
		LastModified: nodesResp.LastModified,
		ThumbnailURL: nodesResp.ThumbnailURL,
		Nodes:        nodes,
		GlobalVars:   b.vars,
	}
}

// walk converts one raw node, extracting its style payloads into the shared
// map and descending into children while depth allows. The input is never
// mutated.
func (b *builder) walk(node *figma.Node, depth, maxDepth int) Node {
	simplified := Node{
		ID:          node.ID,
		Name:        node.Name,
		Type:        node.Type,
		Text:        node.Characters,
		Opacity:     node.Opacity,
		BoundingBox: node.AbsoluteBoundingBox,
	}

	if fills := simplifyPaints(node.Fills); len(fills) > 0 {
		simplified.Fills = b.findOrCreate("fill", fills)
	}

	if strokes := simplifyPaints(node.Strokes); len(strokes) > 0 {
		simplified.Strokes = b.findOrCreate("stroke", Stroke{
			Fills:  strokes,
			Weight: node.StrokeWeight,
		})
	}

	if effects := simplifyEffects(node.Effects); len(effects) > 0 {
		simplified.Effects = b.findOrCreate("effect", effects)
	}

	if node.LayoutMode != "" {
		simplified.Layout = b.findOrCreate("layout", Layout{
			Mode:              node.LayoutMode,
			PrimaryAxisSizing: node.PrimaryAxisSizingMode,
			CounterAxisSizing: node.CounterAxisSizingMode,
			PaddingLeft:       node.PaddingLeft,
			PaddingRight:      node.PaddingRight,
			PaddingTop:        node.PaddingTop,
			PaddingBottom:     node.PaddingBottom,
			ItemSpacing:       node.ItemSpacing,
		})
	}

	if node.Style != nil {
		simplified.TextStyle = b.findOrCreate("style", TextStyleDef{
			FontFamily:          node.Style.FontFamily,
			FontWeight:          node.Style.FontWeight,
			FontSize:            node.Style.FontSize,
			LineHeightPx:        node.Style.LineHeightPx,
			LetterSpacing:       node.Style.LetterSpacing,
			TextAlignHorizontal: node.Style.TextAlignHorizontal,
			TextAlignVertical:   node.Style.TextAlignVertical,
		})
	}

	if node.CornerRadius > 0 {
		simplified.BorderRadius = fmt.Sprintf("%gpx", node.CornerRadius)
	}

	if maxDepth <= 0 || depth < maxDepth {
		for i := range node.Children {
			simplified.Children = append(simplified.Children, b.walk(&node.Children[i], depth+1, maxDepth))
		}
	}

	return simplified
}

// findOrCreate stores the value under its content-derived key and returns
// the key. Identical content always yields the same key, so repeated styles
// collapse into one shared entry.
func (b *builder) findOrCreate(kind string, value any) StyleID {
	id := styleKey(kind, value)
	if _, exists := b.vars.Styles[id]; !exists {
		b.vars.Styles[id] = value
	}
	return id
}

// styleKey derives a stable reference id from the canonical JSON encoding of
// the value: kind prefix plus the first 8 hex characters of its SHA-1.
func styleKey(kind string, value any) StyleID {
	encoded, err := json.Marshal(value)
	if err != nil {
		// Style payloads are plain structs; marshalling cannot realistically
		// fail, but fall back to a kind-only key rather than panic.
		return StyleID(kind + "_invalid")
	}
	sum := sha1.Sum(encoded)
	return StyleID(fmt.Sprintf("%s_%x", kind, sum[:4]))
}

func simplifyPaints(paints []figma.Paint) []Fill {
	var fills []Fill
	for _, paint := range paints {
		if !paint.IsVisible() {
			continue
		}

		fill := Fill{
			Type:    paint.Type,
			Opacity: paint.EffectiveOpacity(),
		}
		if paint.Color != nil {
			fill.Hex = colorToHex(paint.Color)
		}
		if paint.ImageRef != "" {
			fill.ImageRef = paint.ImageRef
		}
		fills = append(fills, fill)
	}
	return fills
}

func simplifyEffects(effects []figma.Effect) []EffectDef {
	var defs []EffectDef
	for _, effect := range effects {
		if !effect.IsVisible() {
			continue
		}

		def := EffectDef{
			Type:   effect.Type,
			Radius: effect.Radius,
			Spread: effect.Spread,
			Offset: effect.Offset,
		}
		if effect.Color != nil {
			def.Hex = colorToHex(effect.Color)
		}
		defs = append(defs, def)
	}
	return defs
}

// colorToHex converts a 0..1 RGBA color to an uppercase #RRGGBB string.
func colorToHex(color *figma.Color) string {
	r := int(math.Round(color.R * 255))
	g := int(math.Round(color.G * 255))
	b := int(math.Round(color.B * 255))
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
