package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero", Page{}, Page{Page: 1, PerPage: DefaultPerPage}},
		{"negative", Page{Page: -3, PerPage: -1}, Page{Page: 1, PerPage: DefaultPerPage}},
		{"large per page", Page{Page: 2, PerPage: 500}, Page{Page: 2, PerPage: MaxPerPage}},
		{"huge page", Page{Page: math.MaxInt, PerPage: 20}, Page{Page: MaxPage, PerPage: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageSkipNeverNegative(t *testing.T) {
	assert.Equal(t, 0, Page{}.Skip())
	assert.Equal(t, 40, Page{Page: 3, PerPage: 20}.Skip())
	assert.Equal(t, (MaxPage-1)*MaxPerPage, Page{Page: math.MaxInt, PerPage: math.MaxInt}.Skip())
}

func TestStampSetsFirstVersion(t *testing.T) {
	var b Base
	b.Stamp(time.Now())
	assert.False(t, b.ID.IsZero())
	assert.EqualValues(t, 1, b.Version)
}
