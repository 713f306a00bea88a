package geom

// Frame dimensions of the default camera, in scene units.
const (
	FrameHeight = 8.0
	FrameWidth  = FrameHeight * 16 / 9
)

// Frame returns the visible region of the default camera.
func Frame() Bounds {
	return Rect(Origin, FrameWidth, FrameHeight)
}

// Layout buffers shared by the layout helpers.
const (
	SmallBuff    = 0.1
	MedSmallBuff = 0.25
	EdgeBuff     = 0.5
)
