package simplify

import "github.com/pixelmachine/mcp-server-figma-bridge/pkg/figma"

// StyleID is a content-derived reference into GlobalVars.Styles.
type StyleID string

// GlobalVars holds the shared style definitions extracted from the document,
// keyed by a hash of the definition's content. Two nodes carrying identical
// styling resolve to the same entry.
type GlobalVars struct {
	Styles map[StyleID]any `json:"styles"`
}

// Design is the flattened, deduplicated representation of a Figma file that
// tool responses serialize. It is built fresh per request and discarded once
// the response is written.
type Design struct {
	Name         string     `json:"name"`
	LastModified string     `json:"lastModified"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Nodes        []Node     `json:"nodes"`
	GlobalVars   GlobalVars `json:"globalVars"`
}

// Node is a single simplified element. Style fields hold references into
// GlobalVars instead of embedded values.
type Node struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Text         string           `json:"text,omitempty"`
	Fills        StyleID          `json:"fills,omitempty"`
	Strokes      StyleID          `json:"strokes,omitempty"`
	Effects      StyleID          `json:"effects,omitempty"`
	Layout       StyleID          `json:"layout,omitempty"`
	TextStyle    StyleID          `json:"textStyle,omitempty"`
	Opacity      *float64         `json:"opacity,omitempty"`
	BorderRadius string           `json:"borderRadius,omitempty"`
	BoundingBox  *figma.Rectangle `json:"boundingBox,omitempty"`
	Children     []Node           `json:"children,omitempty"`
}

// Fill is a simplified paint: a hex color, or an image reference for image
// fills.
type Fill struct {
	Type     string  `json:"type"`
	Hex      string  `json:"hex,omitempty"`
	Opacity  float64 `json:"opacity"`
	ImageRef string  `json:"imageRef,omitempty"`
}

// Stroke bundles the simplified stroke paints with their weight.
type Stroke struct {
	Fills  []Fill  `json:"fills"`
	Weight float64 `json:"weight,omitempty"`
}

// EffectDef is a simplified visual effect.
type EffectDef struct {
	Type   string        `json:"type"`
	Hex    string        `json:"hex,omitempty"`
	Radius float64       `json:"radius,omitempty"`
	Spread float64       `json:"spread,omitempty"`
	Offset *figma.Vector `json:"offset,omitempty"`
}

// Layout captures auto-layout settings of a frame.
type Layout struct {
	Mode              string  `json:"mode"`
	PrimaryAxisSizing string  `json:"primaryAxisSizing,omitempty"`
	CounterAxisSizing string  `json:"counterAxisSizing,omitempty"`
	PaddingLeft       float64 `json:"paddingLeft,omitempty"`
	PaddingRight      float64 `json:"paddingRight,omitempty"`
	PaddingTop        float64 `json:"paddingTop,omitempty"`
	PaddingBottom     float64 `json:"paddingBottom,omitempty"`
	ItemSpacing       float64 `json:"itemSpacing,omitempty"`
}

// TextStyleDef is a simplified text style.
type TextStyleDef struct {
	FontFamily          string  `json:"fontFamily,omitempty"`
	FontWeight          float64 `json:"fontWeight,omitempty"`
	FontSize            float64 `json:"fontSize,omitempty"`
	LineHeightPx        float64 `json:"lineHeightPx,omitempty"`
	LetterSpacing       float64 `json:"letterSpacing,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty"`
}
