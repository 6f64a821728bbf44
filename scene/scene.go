package scene

// Scene is the container for the root nodes of the graph. This base level
// has no transform of its own and draws nothing itself: the matrix stack
// handed to Draw seeds the traversal.
type Scene struct {
	rootNodes []*Node
}

// AddRootNode appends a parentless node to the scene.
func (s *Scene) AddRootNode(n *Node) {
	s.rootNodes = append(s.rootNodes, n)
}

// RootNodes returns the root nodes for diagnostics and loaders.
func (s *Scene) RootNodes() []*Node {
	return s.rootNodes
}

// Integrate advances the motion of every node of every root hierarchy.
func (s *Scene) Integrate(dt float32) {
	for _, n := range s.rootNodes {
		n.Integrate(dt)
	}
}

// Draw asks the root nodes to draw themselves in order. No push is needed
// at this level: the stack's current matrix is the traversal seed.
func (s *Scene) Draw(stack *MatrixStack, sink TransformSink) {
	for _, n := range s.rootNodes {
		n.Draw(stack, sink)
	}
}

// FindNode returns the first node with the given name in depth-first
// insertion order, or nil.
func (s *Scene) FindNode(name string) *Node {
	for _, n := range s.rootNodes {
		if found := findNode(n, name); found != nil {
			return found
		}
	}
	return nil
}

func findNode(n *Node, name string) *Node {
	if n.name == name {
		return n
	}
	for _, child := range n.children {
		if found := findNode(child, name); found != nil {
			return found
		}
	}
	return nil
}

// CountNodes returns the total amount of nodes in the scene.
func (s *Scene) CountNodes() int {
	count := 0
	for _, n := range s.rootNodes {
		count += countNodes(n)
	}
	return count
}

func countNodes(n *Node) int {
	count := 1
	for _, child := range n.children {
		count += countNodes(child)
	}
	return count
}
