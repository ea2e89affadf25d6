package helper

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatsFilter_Full(t *testing.T) {
	// Arrange
	query := url.Values{}
	query.Set("party_ids", "1,2")
	query.Set("gender", "female")
	query.Set("age_ranges", "18-25,65-")

	// Act
	filter, err := ParseStatsFilter(query)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, filter.PartyIDs)
	assert.Equal(t, "female", filter.Gender)
	require.Len(t, filter.AgeRanges, 2)
	assert.Equal(t, 18, filter.AgeRanges[0].Min)
	require.NotNil(t, filter.AgeRanges[0].Max)
	assert.Equal(t, 25, *filter.AgeRanges[0].Max)
	assert.Equal(t, 65, filter.AgeRanges[1].Min)
	assert.Nil(t, filter.AgeRanges[1].Max, "Открытый верх означает 'и старше'")
}

func TestParseStatsFilter_Empty(t *testing.T) {
	// Act
	filter, err := ParseStatsFilter(url.Values{})

	// Assert
	require.NoError(t, err)
	assert.True(t, filter.IsEmpty())
}

func TestParseStatsFilter_BadIDs(t *testing.T) {
	// Arrange
	query := url.Values{}
	query.Set("party_ids", "1,abc")

	// Act
	_, err := ParseStatsFilter(query)

	// Assert
	assert.Error(t, err)
}

func TestParseStatsFilter_BadAgeRange(t *testing.T) {
	cases := []string{"25-18", "abc-30", "18", "-"}
	for _, raw := range cases {
		query := url.Values{}
		query.Set("age_ranges", raw)

		_, err := ParseStatsFilter(query)
		assert.Error(t, err, "диапазон %q должен быть отклонен", raw)
	}
}
