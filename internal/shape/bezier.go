package shape

import (
	"math"

	"github.com/annel0/shapebuilder/internal/bounds"
	"github.com/annel0/shapebuilder/internal/vec"
)

// BezierResolution - шаг параметра t
const BezierResolution = 0.01

// Bezier - кривая Безье произвольной степени по контрольным точкам
type Bezier struct {
	Points []vec.Vec3Float
}

func (Bezier) Kind() Kind { return KindBezier }

// binomials возвращает C(n, k) для k = 0..n
func binomials(n int) []float64 {
	coef := make([]float64, n+1)
	coef[0] = 1
	for k := 1; k <= n; k++ {
		coef[k] = coef[k-1] * float64(n-k+1) / float64(k)
	}
	return coef
}

// Eval вычисляет точку кривой для t в [0, 1] в базисе Бернштейна
func (b Bezier) Eval(t float64) vec.Vec3Float {
	if len(b.Points) == 0 {
		return vec.Vec3Float{}
	}
	return evalBernstein(b.Points, binomials(len(b.Points)-1), t)
}

func evalBernstein(points []vec.Vec3Float, coef []float64, t float64) vec.Vec3Float {
	n := len(points) - 1
	var out vec.Vec3Float
	for k, p := range points {
		w := coef[k] * math.Pow(t, float64(k)) * math.Pow(1-t, float64(n-k))
		out = out.Add(p.Scale(w))
	}
	return out
}

func (b Bezier) positions(bool) []vec.Vec3 {
	if len(b.Points) == 0 {
		return nil
	}
	coef := binomials(len(b.Points) - 1)
	steps := int(math.Round(1 / BezierResolution))
	c := newCurve(steps + 1)

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.addPos(bounds.Round(evalBernstein(b.Points, coef, t)))
	}
	return c.result()
}
