package tool

// NewDefaultManager builds a manager with the full built-in tool set
// registered and the pen selected.
func NewDefaultManager() *Manager {
	m := NewManager()
	for _, t := range DefaultTools() {
		m.RegisterTool(t)
	}
	m.SetCurrentTool(NewPenTool().Type())
	return m
}

// DefaultTools returns one instance of every built-in tool.
func DefaultTools() []Tool {
	return []Tool{
		NewPenTool(),
		NewLineTool(),
		NewRectangleTool(),
		NewHandDrawnRectTool(),
		NewEllipseTool(),
		NewArrowTool(),
		NewStarTool(),
		NewTriangleTool(),
		NewEraserTool(),
		NewHighlighterTool(),
		NewTextTool(),
		NewSelectTool(),
	}
}
