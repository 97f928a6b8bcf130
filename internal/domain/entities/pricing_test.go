package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/voyago/travel-agency-backend/pkg/errors"
)

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputePrice(t *testing.T) {
	t.Run("multiplies nightly rate by whole nights", func(t *testing.T) {
		quote, err := ComputePrice(100, day("2024-06-01"), day("2024-06-04"))
		require.NoError(t, err)

		assert.Equal(t, 3, quote.Nights)
		assert.Equal(t, 100.0, quote.PricePerNight)
		assert.Equal(t, 300.0, quote.TotalAmount)
	})

	t.Run("single night stay", func(t *testing.T) {
		quote, err := ComputePrice(79.5, day("2024-02-28"), day("2024-02-29"))
		require.NoError(t, err)

		assert.Equal(t, 1, quote.Nights)
		assert.Equal(t, 79.5, quote.TotalAmount)
	})

	t.Run("rejects checkout before checkin", func(t *testing.T) {
		_, err := ComputePrice(100, day("2024-06-04"), day("2024-06-01"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects checkout equal to checkin", func(t *testing.T) {
		_, err := ComputePrice(100, day("2024-06-01"), day("2024-06-01"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects negative nightly rate", func(t *testing.T) {
		_, err := ComputePrice(-1, day("2024-06-01"), day("2024-06-04"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("missing rate falls back to the default instead of zero", func(t *testing.T) {
		quote, err := ComputePrice(0, day("2024-06-01"), day("2024-06-03"))
		require.NoError(t, err)

		assert.Equal(t, DefaultNightlyRateUSD, quote.PricePerNight)
		assert.Equal(t, 2*DefaultNightlyRateUSD, quote.TotalAmount)
	})
}
