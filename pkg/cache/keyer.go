package cache

// FrameKeyOpts are the output options that change a rendered frame.
type FrameKeyOpts struct {
	Format     string `json:"format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
}

// Keyer builds cache keys.
type Keyer interface {
	// FrameKey keys a frame rendered in one format. contentHash identifies
	// the frame's primitives.
	FrameKey(contentHash string, opts FrameKeyOpts) string
	// GraphKey keys a rendered binding graph.
	GraphKey(scene, paramsHash, format string) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) FrameKey(contentHash string, opts FrameKeyOpts) string {
	return hashKey("frame", contentHash, opts)
}

func (DefaultKeyer) GraphKey(scene, paramsHash, format string) string {
	return hashKey("graph", scene, paramsHash, format)
}
