package montecarlo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bayesflow/internal/distributions"
)

func TestGetSamples_RaisesIfBothZAndNAreMissing(t *testing.T) {
	dist := distributions.NewStandardNormal()

	_, err := getSamples(dist, nil, 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSampleSource)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestGetSamples_RaisesIfBothZAndNAreGiven(t *testing.T) {
	dist := distributions.NewStandardNormal()
	z, err := dist.SampleN(1, distributions.NewSource(1))
	require.NoError(t, err)

	_, err = getSamples(dist, z, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")
	assert.Contains(t, err.Error(), "n = 1")
}

func TestGetSamples_ReturnsNSamplesIfNProvided(t *testing.T) {
	dist := distributions.NewStandardNormal()

	z, err := getSamples(dist, nil, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, []int(z.Shape()))
}

func TestGetSamples_ReturnsZIfZProvided(t *testing.T) {
	dist := distributions.NewStandardNormal()
	z, err := dist.SampleN(10, distributions.NewSource(2))
	require.NoError(t, err)

	got, err := getSamples(dist, z, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, []int(got.Shape()))
	assert.Same(t, z, got)
}

func TestGetSamples_NegativeN(t *testing.T) {
	_, err := getSamples(distributions.NewStandardNormal(), nil, -5, nil)
	assert.ErrorIs(t, err, ErrInvalidSampleCount)
}

func TestGetSamples_SeedIsDeterministic(t *testing.T) {
	dist := distributions.NewStandardNormal()
	seed := uint64(42)

	a, err := getSamples(dist, nil, 20, &seed)
	require.NoError(t, err)
	b, err := getSamples(dist, nil, 20, &seed)
	require.NoError(t, err)
	assert.Equal(t, a.Data(), b.Data())
}
