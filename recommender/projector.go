package recommender

import "gonum.org/v1/gonum/mat"

// Projector is the frozen encoder half of the autoencoder trained offline:
// a two-layer linear transform with a ReLU between the layers. It is a pure
// forward evaluation of fixed weights; nothing here learns.
type Projector struct {
	w1 *mat.Dense
	b1 *mat.VecDense
	w2 *mat.Dense
	b2 *mat.VecDense
}

// NewProjector builds a projector from row-major layer weights and biases.
// w1 maps the input dimension to the hidden dimension, w2 maps hidden to
// the embedding dimension.
func NewProjector(w1 [][]float64, b1 []float64, w2 [][]float64, b2 []float64) *Projector {
	return &Projector{
		w1: denseFromRows(w1),
		b1: mat.NewVecDense(len(b1), append([]float64(nil), b1...)),
		w2: denseFromRows(w2),
		b2: mat.NewVecDense(len(b2), append([]float64(nil), b2...)),
	}
}

// InputDim reports the expected raw vector length.
func (p *Projector) InputDim() int {
	_, c := p.w1.Dims()
	return c
}

// OutputDim reports the embedding length.
func (p *Projector) OutputDim() int {
	r, _ := p.w2.Dims()
	return r
}

// Apply runs the forward pass: w2·relu(w1·x + b1) + b2.
func (p *Projector) Apply(in []float64) []float64 {
	x := mat.NewVecDense(len(in), append([]float64(nil), in...))

	var h mat.VecDense
	h.MulVec(p.w1, x)
	h.AddVec(&h, p.b1)
	for i := 0; i < h.Len(); i++ {
		if h.AtVec(i) < 0 {
			h.SetVec(i, 0)
		}
	}

	var out mat.VecDense
	out.MulVec(p.w2, &h)
	out.AddVec(&out, p.b2)

	emb := make([]float64, out.Len())
	for i := range emb {
		emb[i] = out.AtVec(i)
	}
	return emb
}

func denseFromRows(rows [][]float64) *mat.Dense {
	r := len(rows)
	c := len(rows[0])
	data := make([]float64, 0, r*c)
	for _, row := range rows {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data)
}
