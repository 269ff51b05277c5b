package extension

import (
	"fmt"
	"sort"

	"presetbird/graph"
	"presetbird/logger"
)

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]NodeDef)}
}

// DefaultRegistry knows our two node classes and has both extensions loaded.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Define(Def(AspectRatioClass, "Classic Aspect Ratio"))
	r.Define(Def(ShowAnythingClass, "Show Anything"))

	// Neither name is taken on a fresh registry.
	_ = r.Register(NewClassicAspectRatio())
	_ = r.Register(NewShowAnything())
	return r
}

// Register adds an extension. Names are unique.
func (r *Registry) Register(ext Extension) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.extensions {
		if existing.Name() == ext.Name() {
			return fmt.Errorf("%w: %s", ErrDuplicateExtension, ext.Name())
		}
	}
	r.extensions = append(r.extensions, ext)
	logger.Debug("Registered extension", "extension", ext.Name())
	return nil
}

// Define records a node class so CreateNode can build it.
func (r *Registry) Define(def NodeDef) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.defs[def.Name] = def
}

// Defs lists the known node classes sorted by name.
func (r *Registry) Defs() []NodeDef {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	defs := make([]NodeDef, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// CreateNode instantiates a defined node class. setup runs before the
// creation hooks, it is where the editor adds the class's own widgets.
func (r *Registry) CreateNode(name string, setup func(*graph.Node)) (*graph.Node, error) {
	r.mutex.RLock()
	def, ok := r.defs[name]
	r.mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown node class %q", name)
	}

	node := graph.NewNode(def.Name, def.DisplayName, def.Category)
	if setup != nil {
		setup(node)
	}
	r.NodeCreated(node)
	return node, nil
}

// NodeCreated runs OnNodeCreated for every extension matching node.
func (r *Registry) NodeCreated(node *graph.Node) {
	for _, ext := range r.matching(node) {
		logger.Node(node.Type, node.ID).Debug("Running node created hook", "extension", ext.Name())
		ext.OnNodeCreated(node)
	}
}

// Executed runs OnExecuted for every extension matching node.
func (r *Registry) Executed(node *graph.Node, msg ExecutedMessage) {
	for _, ext := range r.matching(node) {
		logger.Node(node.Type, node.ID).Debug("Running executed hook", "extension", ext.Name())
		ext.OnExecuted(node, msg)
	}
}

func (r *Registry) matching(node *graph.Node) []Extension {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	def, ok := r.defs[node.Type]
	if !ok {
		def = NodeDef{Name: node.Type, Category: node.Category, DisplayName: node.Title}
	}

	var out []Extension
	for _, ext := range r.extensions {
		if ext.Matches(def) {
			out = append(out, ext)
		}
	}
	return out
}
