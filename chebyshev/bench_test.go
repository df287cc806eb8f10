// SPDX-License-Identifier: MIT

package chebyshev_test

import (
	"fmt"
	"testing"

	"github.com/nipinghe/fmmtl/geom"
)

// sinks to defeat dead-code elimination
var (
	sinkC []complex128
	sinkN int
)

func BenchmarkMatrixBuild(b *testing.B) {
	b.ReportAllocs()
	for _, q := range []int{4, 8} {
		b.Run(fmt.Sprintf("Q=%d", q), func(b *testing.B) {
			basis := mustBasis(b, 2, q)
			box := mustBox(b, geom.Point{0, 0}, geom.Point{1, 1})
			samples := randomPoints(box, 64, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := basis.Matrix(box, samples)
				if err != nil {
					b.Fatal(err)
				}
				sinkN = m.Rows()
			}
		})
	}
}

func BenchmarkAnterpolate(b *testing.B) {
	b.ReportAllocs()
	basis := mustBasis(b, 2, 6)
	box := mustBox(b, geom.Point{0, 0}, geom.Point{1, 1})
	samples := randomPoints(box, 128, 2)
	m, err := basis.Matrix(box, samples)
	if err != nil {
		b.Fatal(err)
	}
	src := make([]complex128, m.Rows())
	for i := range src {
		src[i] = complex(float64(i), 1)
	}
	dst := make([]complex128, m.Cols())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.Anterpolate(dst, src); err != nil {
			b.Fatal(err)
		}
	}
	sinkC = dst
}
