// SPDX-License-Identifier: MIT
package alosi_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	alosi "github.com/harvard-vpal/alosi-go"
	"github.com/harvard-vpal/alosi-go/matrix"
	"github.com/harvard-vpal/alosi-go/memstore"
	"github.com/harvard-vpal/alosi-go/recommend"
)

func TestNew_BuildsAWorkingEngineViaTheRootFacade(t *testing.T) {
	guess, err := matrix.NewDenseFromRows([][]float64{{0.2}})
	require.NoError(t, err)
	slip, err := matrix.NewDenseFromRows([][]float64{{0.1}})
	require.NoError(t, err)
	transit, err := matrix.NewDenseFromRows([][]float64{{0.05}})
	require.NoError(t, err)
	prereqs, err := matrix.NewDense(1, 1)
	require.NoError(t, err)

	store := memstore.New(memstore.Seed{
		Guess: guess, Slip: slip, Transit: transit,
		Difficulty:   []float64{0},
		Prereqs:      prereqs,
		MasteryPrior: []float64{1},
		Weights:      recommend.Weights{Wp: 1, Wr: 1, Wc: 1, Wd: 1},
		Thresholds:   recommend.Thresholds{RStar: 0, LStar: 0},
	})

	e := alosi.New(store)
	activity, err := e.Recommend(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, activity)
}
