package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cfo-helper-api/internal/config"
)

func newSeriesService(random func() float64) *HistoricalSeriesService {
	service := NewHistoricalSeriesService(&config.Config{
		HistoricalSync: config.HistoricalSync{IntervalSeconds: 45, Enabled: true},
	})
	if random != nil {
		service.random = random
	}

	return service
}

func TestHistoricalSeriesService_Seed(t *testing.T) {
	service := newSeriesService(nil)

	series := service.Snapshot()

	require.Len(t, series, 8)
	assert.Equal(t, "Jan", series[0].Month)
	assert.Equal(t, 1250000.0, series[0].Revenue)
	assert.Equal(t, 875000.0, series[0].Expenses)
	assert.Equal(t, "Aug", series[7].Month)
	assert.Equal(t, 1750000.0, series[7].Revenue)
	assert.Equal(t, 1200000.0, series[7].Expenses)
}

func TestHistoricalSeriesService_Perturb(t *testing.T) {
	t.Run("Perturbação máxima soma metade da amplitude", func(t *testing.T) {
		// random = 1.0 desloca +62500 na receita e +37500 na despesa
		service := newSeriesService(func() float64 { return 1.0 })

		service.perturb()

		series := service.Snapshot()
		assert.Equal(t, 1312500.0, series[0].Revenue)
		assert.Equal(t, 912500.0, series[0].Expenses)
	})

	t.Run("Perturbação neutra mantém a série", func(t *testing.T) {
		service := newSeriesService(func() float64 { return 0.5 })

		service.perturb()

		series := service.Snapshot()
		assert.Equal(t, 1250000.0, series[0].Revenue)
		assert.Equal(t, 875000.0, series[0].Expenses)
	})

	t.Run("Valores nunca ficam negativos", func(t *testing.T) {
		service := newSeriesService(func() float64 { return 0.0 })

		// Perturbação mínima repetida até o chão
		for i := 0; i < 100; i++ {
			service.perturb()
		}

		for _, point := range service.Snapshot() {
			assert.GreaterOrEqual(t, point.Revenue, 0.0)
			assert.GreaterOrEqual(t, point.Expenses, 0.0)
		}
	})
}

func TestHistoricalSeriesService_SnapshotIsCopy(t *testing.T) {
	service := newSeriesService(nil)

	series := service.Snapshot()
	series[0].Revenue = -1

	assert.Equal(t, 1250000.0, service.Snapshot()[0].Revenue)
}
