package widgets

// Widget draws itself into a width x height cell.
type Widget interface {
	Render(width, height int) string
}

// Text is a Widget that clips a pre-rendered string.
type Text string

func (t Text) Render(width, height int) string {
	return ClipHeight(fitWidth(string(t), width), height)
}
