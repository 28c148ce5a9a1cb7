// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diva

import (
	"github.com/GaryBoone/GoStats/stats"
	"github.com/cpmech/gosl/io"
)

// IterInfo holds the record of one fixed-point iteration
type IterInfo struct {
	It      int     // iteration number, starting at 1
	Resid   float64 // L2 norm of the linear residual of the momentum solve
	Conv    float64 // L2-relative velocity change over the solve region
	NSolved int     // number of faces solved this iteration
}

// printSummary prints mean and spread of the iteration residuals
func (o *Solver) printSummary() {
	if len(o.Log) == 0 {
		return
	}
	resids := make([]float64, len(o.Log))
	for i, info := range o.Log {
		resids[i] = info.Resid
	}
	mean := stats.StatsMean(resids)
	sdev := 0.0
	if len(resids) > 1 {
		sdev = stats.StatsSampleStandardDeviation(resids)
	}
	io.Pfgrey("diva: %d iterations, resid mean=%.3e sdev=%.3e\n", len(o.Log), mean, sdev)
}
