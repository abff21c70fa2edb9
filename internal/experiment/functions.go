package experiment

import (
	"sort"

	"github.com/born-ml/bayesflow/internal/distributions"
	"github.com/born-ml/bayesflow/internal/montecarlo"
	"github.com/born-ml/bayesflow/internal/tensor"
)

// function is a named integrand. When logspace is set, apply returns
// log g(x) instead of g(x). moment returns the analytic E_p[g(X)] or nil
// when it has no closed form for p.
type function struct {
	apply    montecarlo.Func
	logspace bool
	moment   func(p distributions.Distribution) *tensor.Dense
}

var functions = map[string]function{
	"identity": {
		apply:  func(x *tensor.Dense) *tensor.Dense { return x },
		moment: func(p distributions.Distribution) *tensor.Dense { return p.Mean() },
	},
	"square": {
		apply:  func(x *tensor.Dense) *tensor.Dense { return x.Square() },
		moment: secondMoment,
	},
	"log-square": {
		apply:    func(x *tensor.Dense) *tensor.Dense { return x.Square().Log() },
		logspace: true,
		moment:   secondMoment,
	},
	// Indicator of x1*x2*...*xk > 0 over the trailing event axis.
	"positive-product": {
		apply: func(x *tensor.Dense) *tensor.Dense {
			return x.ReduceProd(-1).Sign().AddScalar(1).MulScalar(0.5)
		},
		moment: func(p distributions.Distribution) *tensor.Dense {
			// Only symmetric about the origin has a closed form here.
			for _, m := range p.Mean().Data() {
				if m != 0 {
					return nil
				}
			}
			return tensor.Full(p.BatchShape(), 0.5)
		},
	},
}

func secondMoment(p distributions.Distribution) *tensor.Dense {
	return p.Variance().Add(p.Mean().Square())
}

// FunctionNames lists the registered integrands in sorted order.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
