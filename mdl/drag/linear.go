// Copyright 2026 The Yelmo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drag

import (
	"github.com/cpmech/gosl/fun/dbf"
)

// Linear implements the linear sliding law: beta := c_bed
type Linear struct {
}

// add model to factory
func init() {
	allocators["linear"] = func() Model { return new(Linear) }
}

// Init initialises model
func (o *Linear) Init(prms dbf.Params) (err error) {
	return
}

// GetPrms gets (an example) of parameters
func (o Linear) GetPrms(example bool) dbf.Params {
	return nil
}

// Beta returns the friction coefficient
func (o Linear) Beta(cBed, uB float64) float64 {
	return cBed
}
