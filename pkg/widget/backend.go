package widget

// Backend receives widget state changes for rendering. The tree treats it as
// an opaque immediate-mode renderer: only the state model and the callback
// contract are harness concerns. A nil backend means headless operation.
type Backend interface {
	// CreateNode is called once per widget creation.
	CreateNode(id ID, class Class, geom Geometry, descriptor string, visible bool, parent ID)
	// UpdateGeometry mirrors a geometry change.
	UpdateGeometry(id ID, geom Geometry)
	// UpdateVisible mirrors a visibility change.
	UpdateVisible(id ID, visible bool)
	// UpdateDescriptor mirrors a descriptor change.
	UpdateDescriptor(id ID, descriptor string)
	// UpdateProperty mirrors a property change.
	UpdateProperty(id ID, prop Property, value any)
	// DestroyNode is called when a widget is destroyed.
	DestroyNode(id ID)
}
