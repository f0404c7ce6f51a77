package autodiff

import (
	"fmt"

	"github.com/emicklei/dot"

	"github.com/ember-ml/ember/internal/tensor"
)

// DOT renders the recorded computation graph in Graphviz DOT format.
//
// Tensors become box nodes labeled with their shape, operations become
// ellipse nodes, and edges follow the data flow of the forward pass.
// Useful for inspecting what a training step actually recorded:
//
//	backend.Tape().StartRecording()
//	logits := model.Forward(batch)
//	loss := criterion.Forward(logits, labels)
//	os.WriteFile("step.dot", []byte(backend.Tape().DOT()), 0o644)
func (t *GradientTape) DOT() string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "TB")

	tensorNodes := make(map[*tensor.RawTensor]dot.Node)

	node := func(raw *tensor.RawTensor) dot.Node {
		if n, ok := tensorNodes[raw]; ok {
			return n
		}
		n := g.Node(fmt.Sprintf("t%p", raw)).
			Box().
			Label(fmt.Sprintf("%s %v", raw.DType(), raw.Shape()))
		tensorNodes[raw] = n
		return n
	}

	for i, op := range t.operations {
		opNode := g.Node(fmt.Sprintf("op%d", i)).Label(op.Name())
		for _, in := range op.Inputs() {
			g.Edge(node(in), opNode)
		}
		g.Edge(opNode, node(op.Output()))
	}

	return g.String()
}
