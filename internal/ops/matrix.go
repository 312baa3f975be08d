package ops

import (
	"math"

	"mathcli/internal/catalog"
	"mathcli/internal/operror"
	"mathcli/internal/value"
)

func matUnary(name, param, help string, fn func([][]float64) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{param},
		Category:   catalog.CategoryMatrix,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			m, err := value.AsMatrix(args[0], param)
			if err != nil {
				return value.Unit(), err
			}
			return fn(m)
		},
	}
}

func matBinary(name, help string, fn func(a, b [][]float64) (value.Value, error)) *catalog.Descriptor {
	return &catalog.Descriptor{
		Name:       name,
		Parameters: []string{"a", "b"},
		Category:   catalog.CategoryMatrix,
		Help:       help,
		Capability: func(args []value.Value) (value.Value, error) {
			a, err := value.AsMatrix(args[0], "a")
			if err != nil {
				return value.Unit(), err
			}
			b, err := value.AsMatrix(args[1], "b")
			if err != nil {
				return value.Unit(), err
			}
			return fn(a, b)
		},
	}
}

func filled(n int64, diag, off float64) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		row := make([]float64, n)
		for j := range row {
			if int64(j) == int64(i) {
				row[j] = diag
			} else {
				row[j] = off
			}
		}
		m[i] = row
	}
	return m
}

func registerMatrix(r *catalog.Registry) {
	r.MustRegister(matUnary("matrix", "cells",
		"Parse a matrix literal: matrix 1,2;3,4 -> [[1, 2], [3, 4]]",
		func(m [][]float64) (value.Value, error) {
			return value.Matrix(m), nil
		}))

	r.MustRegister(matBinary("madd", "Element-wise matrix addition: madd 1,2;3,4 5,6;7,8 -> [[6, 8], [10, 12]]",
		func(a, b [][]float64) (value.Value, error) {
			if len(a) != len(b) || len(a[0]) != len(b[0]) {
				return value.Unit(), operror.MatrixDimensionMismatch("%dx%d vs %dx%d", len(a), len(a[0]), len(b), len(b[0]))
			}
			out := make([][]float64, len(a))
			for i := range a {
				out[i] = make([]float64, len(a[i]))
				for j := range a[i] {
					out[i][j] = a[i][j] + b[i][j]
				}
			}
			return value.Matrix(out), nil
		}))

	r.MustRegister(matBinary("msub", "Element-wise matrix subtraction: msub 5,6;7,8 1,2;3,4 -> [[4, 4], [4, 4]]",
		func(a, b [][]float64) (value.Value, error) {
			if len(a) != len(b) || len(a[0]) != len(b[0]) {
				return value.Unit(), operror.MatrixDimensionMismatch("%dx%d vs %dx%d", len(a), len(a[0]), len(b), len(b[0]))
			}
			out := make([][]float64, len(a))
			for i := range a {
				out[i] = make([]float64, len(a[i]))
				for j := range a[i] {
					out[i][j] = a[i][j] - b[i][j]
				}
			}
			return value.Matrix(out), nil
		}))

	r.MustRegister(matBinary("mmul", "Matrix product: mmul 1,2;3,4 5,6;7,8 -> [[19, 22], [43, 50]]",
		func(a, b [][]float64) (value.Value, error) {
			if len(a[0]) != len(b) {
				return value.Unit(), operror.MatrixDimensionMismatch("%d columns vs %d rows", len(a[0]), len(b))
			}
			out := make([][]float64, len(a))
			for i := range a {
				out[i] = make([]float64, len(b[0]))
				for j := range b[0] {
					sum := 0.0
					for k := range b {
						sum += a[i][k] * b[k][j]
					}
					out[i][j] = sum
				}
			}
			return value.Matrix(out), nil
		}))

	r.MustRegister(&catalog.Descriptor{
		Name:       "mscale",
		Parameters: []string{"scalar", "m"},
		Category:   catalog.CategoryMatrix,
		Help:       "Scalar multiplication: mscale 2 1,2;3,4 -> [[2, 4], [6, 8]]",
		Capability: func(args []value.Value) (value.Value, error) {
			s, err := value.AsNumber(args[0], "scalar")
			if err != nil {
				return value.Unit(), err
			}
			m, err := value.AsMatrix(args[1], "m")
			if err != nil {
				return value.Unit(), err
			}
			out := make([][]float64, len(m))
			for i := range m {
				out[i] = make([]float64, len(m[i]))
				for j := range m[i] {
					out[i][j] = s * m[i][j]
				}
			}
			return value.Matrix(out), nil
		},
	})

	r.MustRegister(matUnary("transpose", "m", "Matrix transpose: transpose 1,2;3,4 -> [[1, 3], [2, 4]]",
		func(m [][]float64) (value.Value, error) {
			out := make([][]float64, len(m[0]))
			for j := range out {
				out[j] = make([]float64, len(m))
				for i := range m {
					out[j][i] = m[i][j]
				}
			}
			return value.Matrix(out), nil
		}))

	r.MustRegister(matUnary("det", "m", "Determinant of a square matrix: det 1,2;3,4 -> -2",
		func(m [][]float64) (value.Value, error) {
			if len(m) != len(m[0]) {
				return value.Unit(), operror.MatrixDimensionMismatch("determinant requires a square matrix, got %dx%d", len(m), len(m[0]))
			}
			d, _ := determinant(m)
			return value.Number(d), nil
		}))

	r.MustRegister(matUnary("inverse", "m", "Matrix inverse: inverse 4,7;2,6 -> [[0.6, -0.7], [-0.2, 0.4]]",
		func(m [][]float64) (value.Value, error) {
			if len(m) != len(m[0]) {
				return value.Unit(), operror.MatrixDimensionMismatch("inverse requires a square matrix, got %dx%d", len(m), len(m[0]))
			}
			inv, ok := invert(m)
			if !ok {
				return value.Unit(), operror.SingularMatrix()
			}
			return value.Matrix(inv), nil
		}))

	r.MustRegister(matUnary("trace", "m", "Sum of the main diagonal: trace 1,2;3,4 -> 5",
		func(m [][]float64) (value.Value, error) {
			if len(m) != len(m[0]) {
				return value.Unit(), operror.MatrixDimensionMismatch("trace requires a square matrix, got %dx%d", len(m), len(m[0]))
			}
			sum := 0.0
			for i := range m {
				sum += m[i][i]
			}
			return value.Number(sum), nil
		}))

	r.MustRegister(matUnary("mrank", "m", "Rank by Gaussian elimination: mrank 1,2;2,4 -> 1",
		func(m [][]float64) (value.Value, error) {
			return value.Integer(rank(m)), nil
		}))

	sizeOp := func(name, help string, diag float64) *catalog.Descriptor {
		return &catalog.Descriptor{
			Name:       name,
			Parameters: []string{"n"},
			Category:   catalog.CategoryMatrix,
			Help:       help,
			Capability: func(args []value.Value) (value.Value, error) {
				n, err := value.AsInteger(args[0], "n")
				if err != nil {
					return value.Unit(), err
				}
				if n < 1 || n > 100 {
					return value.Unit(), operror.InvalidValue("%s requires n in [1, 100]", name)
				}
				return value.Matrix(filled(n, diag, 0)), nil
			},
		}
	}
	r.MustRegister(sizeOp("identity", "Identity matrix of size n: identity 2 -> [[1, 0], [0, 1]]", 1))
	r.MustRegister(sizeOp("zeros", "Zero matrix of size n: zeros 2 -> [[0, 0], [0, 0]]", 0))

	r.MustRegister(&catalog.Descriptor{
		Name:       "ones",
		Parameters: []string{"n"},
		Category:   catalog.CategoryMatrix,
		Help:       "All-ones matrix of size n: ones 2 -> [[1, 1], [1, 1]]",
		Capability: func(args []value.Value) (value.Value, error) {
			n, err := value.AsInteger(args[0], "n")
			if err != nil {
				return value.Unit(), err
			}
			if n < 1 || n > 100 {
				return value.Unit(), operror.InvalidValue("ones requires n in [1, 100]")
			}
			return value.Matrix(filled(n, 1, 1)), nil
		},
	})
}

// determinant returns the determinant and whether the matrix is singular,
// using partial-pivot Gaussian elimination on a copy.
func determinant(m [][]float64) (float64, bool) {
	n := len(m)
	a := cloneMatrix(m)
	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < value.Epsilon {
			return 0, true
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			det = -det
		}
		det *= a[col][col]
		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}
	return det, false
}

// invert runs Gauss-Jordan elimination against an identity augmentation.
func invert(m [][]float64) ([][]float64, bool) {
	n := len(m)
	a := cloneMatrix(m)
	inv := filled(int64(n), 1, 0)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < value.Epsilon {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]
		scale := a[col][col]
		for k := 0; k < n; k++ {
			a[col][k] /= scale
			inv[col][k] /= scale
		}
		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := a[row][col]
			for k := 0; k < n; k++ {
				a[row][k] -= factor * a[col][k]
				inv[row][k] -= factor * inv[col][k]
			}
		}
	}
	return inv, true
}

func rank(m [][]float64) int64 {
	a := cloneMatrix(m)
	rows, cols := len(a), len(a[0])
	var rk int64
	row := 0
	for col := 0; col < cols && row < rows; col++ {
		pivot := row
		for rr := row + 1; rr < rows; rr++ {
			if math.Abs(a[rr][col]) > math.Abs(a[pivot][col]) {
				pivot = rr
			}
		}
		if math.Abs(a[pivot][col]) < value.Epsilon {
			continue
		}
		a[row], a[pivot] = a[pivot], a[row]
		for rr := row + 1; rr < rows; rr++ {
			factor := a[rr][col] / a[row][col]
			for k := col; k < cols; k++ {
				a[rr][k] -= factor * a[row][k]
			}
		}
		rk++
		row++
	}
	return rk
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
