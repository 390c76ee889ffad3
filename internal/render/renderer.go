package render

type Renderer interface {
	Init() error
	Deinit() error
	// Present shows the composed frame on the display surface
	Present(frame *Frame) error
}
