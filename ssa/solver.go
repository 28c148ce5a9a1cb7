// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// LinSol wraps an external linear solver for the assembled momentum system.
// Init must be called whenever the matrix (structure or values) changes;
// Solve may then be called with any right-hand side.
type LinSol interface {
	Init(kb *la.Triplet) (err error)  // factorise the assembled matrix
	Solve(x, b []float64) (err error) // solve for one right-hand side
	Clean()                           // release solver resources
}

// NewLinSol returns a new linear solver backend
func NewLinSol(name string) (ls LinSol, err error) {
	allocator, ok := solverallocators[name]
	if !ok {
		return nil, chk.Err("linear solver %q is not available in 'ssa' database", name)
	}
	return allocator(), nil
}

// solverallocators holds all available linear solver backends
var solverallocators = map[string]func() LinSol{}

// sparse backend ///////////////////////////////////////////////////////////////////////////////////

// SparseSol delegates to the gosl sparse solver (UMFPACK)
type SparseSol struct {
	ls    la.LinSol
	ready bool
}

func init() {
	solverallocators["umfpack"] = func() LinSol { return new(SparseSol) }
}

// Init factorises the matrix. The mask pruning changes the system structure
// between iterations, so the symbolic analysis is redone every time.
func (o *SparseSol) Init(kb *la.Triplet) (err error) {
	o.Clean()
	o.ls = la.GetSolver("umfpack")
	err = o.ls.InitR(kb, false, false, false)
	if err != nil {
		return chk.Err("cannot initialise sparse solver:\n%v", err)
	}
	err = o.ls.Fact()
	if err != nil {
		return chk.Err("factorisation failed:\n%v", err)
	}
	o.ready = true
	return
}

// Solve solves the factorised system
func (o *SparseSol) Solve(x, b []float64) (err error) {
	if !o.ready {
		return chk.Err("sparse solver is not factorised")
	}
	err = o.ls.SolveR(x, b, false)
	if err != nil {
		return chk.Err("sparse solve failed:\n%v", err)
	}
	return
}

// Clean releases solver resources
func (o *SparseSol) Clean() {
	if o.ready {
		o.ls.Clean()
		o.ready = false
	}
}

// dense backend ////////////////////////////////////////////////////////////////////////////////////

// DenseSol solves the system with a dense LU decomposition (gonum). Intended
// for small domains and tests where no sparse solver library is available.
type DenseSol struct {
	lu mat.LU
	n  int
}

func init() {
	solverallocators["dense"] = func() LinSol { return new(DenseSol) }
}

// Init converts the triplet to dense form and factorises it
func (o *DenseSol) Init(kb *la.Triplet) (err error) {
	K := kb.ToMatrix(nil).ToDense()
	o.n = len(K)
	A := mat.NewDense(o.n, o.n, nil)
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			A.Set(i, j, K[i][j])
		}
	}
	o.lu.Factorize(A)
	return
}

// Solve solves the factorised system
func (o *DenseSol) Solve(x, b []float64) (err error) {
	B := mat.NewDense(o.n, 1, nil)
	for i := 0; i < o.n; i++ {
		B.Set(i, 0, b[i])
	}
	X := mat.NewDense(o.n, 1, nil)
	errSolve := o.lu.Solve(X, false, B)
	if errSolve != nil {
		return chk.Err("dense solve failed:\n%v", errSolve)
	}
	for i := 0; i < o.n; i++ {
		x[i] = X.At(i, 0)
	}
	return
}

// Clean releases solver resources
func (o *DenseSol) Clean() {
}
