package doctree

// Visitor is called once per node. The returned node replaces the visited one;
// returning n (or nil) leaves the tree unchanged at that position.
type Visitor func(n *Node) *Node

// Walk visits root and every descendant once, pre-order and depth-first.
//
// After a node is visited the walker descends into the content of whatever
// node the visitor returned. The child sequence is re-read on every step, so a
// visitor may splice new nodes into the content of the node it is visiting (or
// of any not-yet-visited descendant); spliced nodes are visited exactly once,
// in their new position. Nodes before the current index are never revisited.
func Walk(root *Node, visit Visitor) *Node {
	if root == nil {
		return nil
	}
	if out := visit(root); out != nil {
		root = out
	}
	for i := 0; i < len(root.Content); i++ {
		root.Content[i] = Walk(root.Content[i], visit)
	}
	return root
}
