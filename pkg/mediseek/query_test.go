package mediseek_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params *mediseek.QueryParams
		want   string
	}{
		{
			name:   "empty",
			params: mediseek.NewQueryParams(),
			want:   "",
		},
		{
			name:   "nil receiver",
			params: nil,
			want:   "",
		},
		{
			name:   "pagination",
			params: mediseek.NewQueryParams().WithPage(2, 25),
			want:   "page=2&per_page=25",
		},
		{
			name:   "search and specialty",
			params: &mediseek.QueryParams{Search: "dermatology", Specialty: "derma"},
			want:   "q=dermatology&specialty=derma",
		},
		{
			name:   "status filter",
			params: &mediseek.QueryParams{Status: mediseek.BookingStatusPending},
			want:   "status=pending",
		},
		{
			name:   "encoded keys sort deterministically",
			params: mediseek.NewQueryParams().WithFilter("city", "lahore").WithPage(1, 10),
			want:   "city=lahore&page=1&per_page=10",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.params.ToValues().Encode())
		})
	}
}

func TestQueryParams_ToFilterMap(t *testing.T) {
	t.Parallel()

	params := mediseek.NewQueryParams().WithPage(3, 0).WithFilter("specialty", "cardio")

	filters := params.ToFilterMap()
	assert.Equal(t, map[string]string{"page": "3", "specialty": "cardio"}, filters)

	assert.Nil(t, mediseek.NewQueryParams().ToFilterMap())

	var nilParams *mediseek.QueryParams
	assert.Nil(t, nilParams.ToFilterMap())
}
