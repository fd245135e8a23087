package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SovicoAssistant/internal/entity"
)

func TestParseModelExtraction(t *testing.T) {
	raw := "```json\n{\"from\":\"HN\",\"to\":\"đà nẵng\",\"time_preference\":\"Tối\",\"price_range\":\"luxury\",\"passengers\":42,\"service_type\":\"Hotel\"}\n```"

	got, err := ParseModelExtraction(raw, SourceGemini)
	require.NoError(t, err)

	assert.Equal(t, entity.Locations{From: CityHanoi, To: CityDaNang}, got.Slots.Locations)
	assert.Equal(t, "tối", got.Slots.TimePreference)
	assert.Empty(t, got.Slots.PriceRange)
	assert.Equal(t, 10, got.Slots.Passengers)
	assert.Equal(t, entity.ServiceHotel, got.ServiceType)
	assert.Equal(t, SourceGemini, got.Source)

	_, err = ParseModelExtraction("{", SourceGemini)
	assert.Error(t, err)
}
