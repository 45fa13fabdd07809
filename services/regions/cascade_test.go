package regions

import (
	"testing"

	"itrack_admin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	full := Selection{CountryID: "1", StateID: "KA", DistrictID: "BLR", Selected: []string{"560001", "560003"}}

	tests := []struct {
		name     string
		change   Change
		expected Selection
	}{
		{
			name:     "Country change clears everything below",
			change:   Change{Field: FieldCountry, Value: "2"},
			expected: Selection{CountryID: "2"},
		},
		{
			name:     "State change clears district and pincodes",
			change:   Change{Field: FieldState, Value: "TN"},
			expected: Selection{CountryID: "1", StateID: "TN"},
		},
		{
			name:     "District change clears pincodes",
			change:   Change{Field: FieldDistrict, Value: "MYS"},
			expected: Selection{CountryID: "1", StateID: "KA", DistrictID: "MYS"},
		},
		{
			name:     "Clearing the district clears pincodes",
			change:   Change{Field: FieldDistrict, Value: ""},
			expected: Selection{CountryID: "1", StateID: "KA"},
		},
		{
			name:     "Same country is a no-op",
			change:   Change{Field: FieldCountry, Value: "1"},
			expected: full,
		},
		{
			name:     "Same district is a no-op",
			change:   Change{Field: FieldDistrict, Value: "BLR"},
			expected: full,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Reduce(full, tt.change)
			assert.Equal(t, tt.expected.CountryID, next.CountryID)
			assert.Equal(t, tt.expected.StateID, next.StateID)
			assert.Equal(t, tt.expected.DistrictID, next.DistrictID)
			assert.ElementsMatch(t, tt.expected.Selected, next.Selected)
		})
	}
}

func TestReduceDoesNotAliasInput(t *testing.T) {
	prev := Selection{CountryID: "1", StateID: "KA", DistrictID: "BLR", Selected: []string{"560001"}}
	next := Reduce(prev, Change{Field: FieldDistrict, Value: "BLR"})
	next.Selected[0] = "changed"
	assert.Equal(t, "560001", prev.Selected[0])
}

func TestParseField(t *testing.T) {
	field, err := ParseField("district")
	require.NoError(t, err)
	assert.Equal(t, FieldDistrict, field)

	_, err = ParseField("pincode")
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	ref := bengaluruReference()

	states := StateOptions(&ref, "1")
	require.Len(t, states, 2)
	assert.Equal(t, "Karnataka", states[0].Name)

	districts := DistrictOptions(&ref, "KA")
	require.Len(t, districts, 2)
	assert.Equal(t, "Bengaluru", districts[0].Name)

	t.Run("Dangling ids yield empty lists", func(t *testing.T) {
		assert.Empty(t, StateOptions(&ref, "99"))
		assert.Empty(t, DistrictOptions(&ref, "XX"))
		assert.NotNil(t, StateOptions(&ref, ""))
		assert.NotNil(t, DistrictOptions(&ref, ""))
	})
}

func TestCandidates(t *testing.T) {
	ref := bengaluruReference()

	t.Run("Assigned pincodes are excluded", func(t *testing.T) {
		assert.Equal(t, []string{"560001", "560003"}, Candidates(&ref, "BLR", nil))
		for _, district := range []string{"BLR", "MYS", "CHN", "XX"} {
			assert.NotContains(t, Candidates(&ref, district, nil), "560002")
			assert.NotContains(t, Candidates(&ref, district, nil), "570003")
		}
	})

	t.Run("Empty district has no candidates", func(t *testing.T) {
		assert.Empty(t, Candidates(&ref, "", []string{"560002"}))
	})

	t.Run("Owned pincodes stay eligible", func(t *testing.T) {
		assert.Equal(t, []string{"560001", "560002", "560003"}, Candidates(&ref, "BLR", []string{"560002"}))
	})

	t.Run("Owned pincodes missing from the table are appended", func(t *testing.T) {
		assert.Equal(t, []string{"560001", "560003", "560099"}, Candidates(&ref, "BLR", []string{"560099"}))
	})

	t.Run("Duplicates in the table are collapsed", func(t *testing.T) {
		dup := bengaluruReference()
		dup.Pincodes = append(dup.Pincodes, models.Pincode{Code: "560001", DistrictID: "BLR"})
		assert.Equal(t, []string{"560001", "560003"}, Candidates(&dup, "BLR", nil))
	})
}

func TestHydrate(t *testing.T) {
	region := &models.Region{
		ID:         "7",
		CountryID:  "1",
		StateID:    "KA",
		DistrictID: "BLR",
		Pincodes:   models.PincodeList{"560002", "560001", "560002"},
	}

	sel := Hydrate(region)
	assert.Equal(t, "1", sel.CountryID)
	assert.Equal(t, "KA", sel.StateID)
	assert.Equal(t, "BLR", sel.DistrictID)
	assert.Equal(t, []string{"560002", "560001"}, sel.Selected)
}
