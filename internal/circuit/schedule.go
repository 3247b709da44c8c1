package circuit

// Moments groups operation indices into layers of operations on disjoint
// wires. Each operation is placed one layer after the latest earlier
// operation sharing a wire with it, so applying the layers in order is
// equivalent to applying Ops in list order.
func (c *Circuit) Moments() [][]int {
	last := make(map[int]int) // wire -> layer of its latest operation
	var layers [][]int
	for i, op := range c.Ops {
		layer := 0
		for _, w := range op.Wires {
			if l, ok := last[w]; ok && l+1 > layer {
				layer = l + 1
			}
		}
		for _, w := range op.Wires {
			last[w] = layer
		}
		if layer == len(layers) {
			layers = append(layers, nil)
		}
		layers[layer] = append(layers[layer], i)
	}
	return layers
}

// Depth returns the number of layers Moments produces.
func (c *Circuit) Depth() int {
	return len(c.Moments())
}
