package ash

// Inspect traverses the tree rooted at n in depth-first pre-order, calling
// f for each node. If f returns false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range n.Children() {
		Inspect(child, f)
	}
}

// InspectAll runs Inspect over every node in list.
func InspectAll(list []Node, f func(Node) bool) {
	for _, n := range list {
		Inspect(n, f)
	}
}
