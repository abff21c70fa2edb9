package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/bayesflow/internal/parallel"
	"github.com/born-ml/bayesflow/internal/tensor"
)

// LogMeanExp computes log(mean(exp(x))) along axis without overflow.
// Fibers whose values are all -Inf yield -Inf.
func LogMeanExp(x *tensor.Dense, axis int) (*tensor.Dense, error) {
	return x.Reduce(axis, func(f []float64) float64 {
		return floats.LogSumExp(f) - math.Log(float64(len(f)))
	})
}

// columns returns the sample count and the number of values per sample
// of a tensor whose first axis is the sample axis.
func columns(x *tensor.Dense) (n, m int) {
	n = x.Shape()[0]
	return n, x.NumElements() / n
}

// sampleMean averages x over its first axis. Chunks of the sample axis
// are summed in parallel and their means combined with stat.Mean weighted
// by chunk length, so the result depends only on cfg.MinChunkSize.
func sampleMean(x *tensor.Dense, cfg parallel.Config) (*tensor.Dense, error) {
	n, m := columns(x)
	ranges := parallel.Ranges(n, cfg)
	means := make([][]float64, len(ranges))
	data := x.Data()

	parallel.ForRanges(ranges, func(k int, r parallel.Range) {
		sums := make([]float64, m)
		for i := r.Start; i < r.End; i++ {
			floats.Add(sums, data[i*m:(i+1)*m])
		}
		floats.Scale(1/float64(r.Len()), sums)
		means[k] = sums
	}, cfg)

	weights := make([]float64, len(ranges))
	for k, r := range ranges {
		weights[k] = float64(r.Len())
	}

	out := make([]float64, m)
	chunk := make([]float64, len(ranges))
	for j := range out {
		for k := range ranges {
			chunk[k] = means[k][j]
		}
		out[j] = stat.Mean(chunk, weights)
	}
	return tensor.New(out, x.Shape()[1:].Clone())
}

// sampleLogMeanExp computes LogMeanExp over the first axis. Each chunk
// keeps its own running max and the shifted sum of exponentials; chunks
// are rescaled to the global max when combined.
func sampleLogMeanExp(x *tensor.Dense, cfg parallel.Config) (*tensor.Dense, error) {
	n, m := columns(x)
	ranges := parallel.Ranges(n, cfg)
	maxes := make([][]float64, len(ranges))
	sums := make([][]float64, len(ranges))
	data := x.Data()

	parallel.ForRanges(ranges, func(k int, r parallel.Range) {
		mx := make([]float64, m)
		for j := range mx {
			mx[j] = math.Inf(-1)
		}
		for i := r.Start; i < r.End; i++ {
			row := data[i*m : (i+1)*m]
			for j, v := range row {
				if v > mx[j] || math.IsNaN(v) {
					mx[j] = v
				}
			}
		}

		s := make([]float64, m)
		for i := r.Start; i < r.End; i++ {
			row := data[i*m : (i+1)*m]
			for j, v := range row {
				if !math.IsInf(mx[j], 0) {
					s[j] += math.Exp(v - mx[j])
				}
			}
		}
		maxes[k], sums[k] = mx, s
	}, cfg)

	out := make([]float64, m)
	logN := math.Log(float64(n))
	for j := range out {
		global := math.Inf(-1)
		for k := range ranges {
			if v := maxes[k][j]; v > global || math.IsNaN(v) {
				global = v
			}
		}
		if math.IsInf(global, 0) || math.IsNaN(global) {
			out[j] = global
			continue
		}

		total := 0.0
		for k := range ranges {
			if math.IsInf(maxes[k][j], -1) {
				continue
			}
			total += sums[k][j] * math.Exp(maxes[k][j]-global)
		}
		out[j] = math.Log(total) - logN + global
	}
	return tensor.New(out, x.Shape()[1:].Clone())
}
