// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package montecarlo_test

import (
	"fmt"

	"github.com/born-ml/bayesflow/distributions"
	"github.com/born-ml/bayesflow/montecarlo"
	"github.com/born-ml/bayesflow/tensor"
)

func ExampleExpectation() {
	p, _ := distributions.NewNormal(tensor.Vector(1, -1), tensor.Vector(0.3, 0.5))

	identity := func(x *tensor.Dense) *tensor.Dense { return x }
	mean, err := montecarlo.Expectation(identity, p, montecarlo.WithN(100_000), montecarlo.WithSeed(42))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.1f %.1f\n", mean.Data()[0], mean.Data()[1])
	// Output: 1.0 -1.0
}

func ExampleExpectationImportanceSampler() {
	p, _ := distributions.NewNormal(tensor.Vector(-1, 1), tensor.Vector(0.5, 0.5))
	q, _ := distributions.NewNormal(tensor.Vector(0, 0), tensor.Vector(1, 1))

	identity := func(x *tensor.Dense) *tensor.Dense { return x }
	mean, err := montecarlo.ExpectationImportanceSampler(identity, p.LogProb, q,
		montecarlo.WithN(200_000), montecarlo.WithSeed(42))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.1f %.1f\n", mean.Data()[0], mean.Data()[1])
	// Output: -1.0 1.0
}

func ExampleExpectation_missingSampleSource() {
	p := distributions.NewStandardNormal()
	identity := func(x *tensor.Dense) *tensor.Dense { return x }

	_, err := montecarlo.Expectation(identity, p)
	fmt.Println(err)
	// Output: expectation: must specify exactly one of arguments "n" and "z". Found: n = none, z = none
}
