package rain

// Renderer draws one frame from params. It must tolerate being called right
// after a viewport change.
type Renderer interface {
	Render(p RenderParams)
}

// Releaser is implemented by renderers that hold resources until the loop stops.
type Releaser interface {
	Release()
}

type RendererFunc func(RenderParams)

func (f RendererFunc) Render(p RenderParams) { f(p) }

// Renderers fans a frame out to several renderers in order.
type Renderers []Renderer

func (rs Renderers) Render(p RenderParams) {
	for _, r := range rs {
		r.Render(p)
	}
}

func (rs Renderers) Release() {
	for i := len(rs) - 1; i >= 0; i-- {
		if rel, ok := rs[i].(Releaser); ok {
			rel.Release()
		}
	}
}
