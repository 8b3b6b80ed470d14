package figma

// FileResponse is the response from the Figma file endpoint. It carries the
// file metadata and the full document tree.
type FileResponse struct {
	Name          string `json:"name"`
	LastModified  string `json:"lastModified"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	Version       string `json:"version"`
	Document      Node   `json:"document"`
	SchemaVersion int    `json:"schemaVersion"`
}

// NodesResponse is the response from the nodes endpoint when fetching
// specific nodes by id.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

// NodeData wraps a requested node with its document subtree.
type NodeData struct {
	Document Node `json:"document"`
}

// ImagesResponse is the response from the image render endpoint. Images maps
// node id to a short-lived download URL; a null/empty entry means the node
// could not be rendered.
type ImagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

// ImageFillsResponse is the response from the file images endpoint, listing
// download URLs for every image fill used in the file, keyed by image ref.
type ImageFillsResponse struct {
	Error  bool `json:"error"`
	Status int  `json:"status"`
	Meta   struct {
		Images map[string]string `json:"images"`
	} `json:"meta"`
}

// Node is a single element in the Figma document tree. Nodes can be frames,
// groups, text, shapes or other elements, each with fills, strokes, effects,
// layout settings and children.
type Node struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Type                  string     `json:"type"`
	Children              []Node     `json:"children,omitempty"`
	BackgroundColor       *Color     `json:"backgroundColor,omitempty"`
	Fills                 []Paint    `json:"fills,omitempty"`
	Strokes               []Paint    `json:"strokes,omitempty"`
	StrokeWeight          float64    `json:"strokeWeight,omitempty"`
	CornerRadius          float64    `json:"cornerRadius,omitempty"`
	Opacity               *float64   `json:"opacity,omitempty"`
	Effects               []Effect   `json:"effects,omitempty"`
	Characters            string     `json:"characters,omitempty"`
	Style                 *TypeStyle `json:"style,omitempty"`
	AbsoluteBoundingBox   *Rectangle `json:"absoluteBoundingBox,omitempty"`
	LayoutMode            string     `json:"layoutMode,omitempty"`
	PrimaryAxisSizingMode string     `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode string     `json:"counterAxisSizingMode,omitempty"`
	PaddingLeft           float64    `json:"paddingLeft,omitempty"`
	PaddingRight          float64    `json:"paddingRight,omitempty"`
	PaddingTop            float64    `json:"paddingTop,omitempty"`
	PaddingBottom         float64    `json:"paddingBottom,omitempty"`
	ItemSpacing           float64    `json:"itemSpacing,omitempty"`
}

// Color is an RGBA color with channel values in the 0..1 range.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint is a fill or stroke applied to a node. Visible and Opacity are
// pointers because the API omits them at their defaults (true and 1).
type Paint struct {
	Type     string   `json:"type"`
	Visible  *bool    `json:"visible,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Color    *Color   `json:"color,omitempty"`
	ImageRef string   `json:"imageRef,omitempty"`
}

// IsVisible reports whether the paint is rendered. An absent visible field
// means visible.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// EffectiveOpacity returns the paint opacity, defaulting to fully opaque.
func (p Paint) EffectiveOpacity() float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

// Effect is a visual effect applied to a node, such as a drop shadow or blur.
type Effect struct {
	Type    string  `json:"type"`
	Visible *bool   `json:"visible,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Color   *Color  `json:"color,omitempty"`
	Offset  *Vector `json:"offset,omitempty"`
	Spread  float64 `json:"spread,omitempty"`
}

// IsVisible reports whether the effect is rendered.
func (e Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// Vector is a 2D coordinate or offset.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle holds the text styling properties of a TEXT node.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontWeight          float64 `json:"fontWeight"`
	FontSize            float64 `json:"fontSize"`
	LineHeightPx        float64 `json:"lineHeightPx"`
	LetterSpacing       float64 `json:"letterSpacing"`
	TextAlignHorizontal string  `json:"textAlignHorizontal"`
	TextAlignVertical   string  `json:"textAlignVertical"`
}

// Rectangle is a bounding box with position and dimensions.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
