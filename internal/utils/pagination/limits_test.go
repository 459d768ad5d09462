package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		limit      *int
		offset     int
		max        int
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", max: 1000, wantLimit: 100},
		{name: "default capped by small max", max: 20, wantLimit: 20},
		{name: "explicit values kept", limit: intPtr(50), offset: 10, max: 1000, wantLimit: 50, wantOffset: 10},
		{name: "max is inclusive", limit: intPtr(1000), max: 1000, wantLimit: 1000},
		{name: "explicit zero", limit: intPtr(0), max: 1000, wantErr: true},
		{name: "above max", limit: intPtr(1001), max: 1000, wantErr: true},
		{name: "negative limit", limit: intPtr(-1), max: 1000, wantErr: true},
		{name: "negative offset", limit: intPtr(10), offset: -5, max: 1000, wantErr: true},
		{name: "bad max", limit: intPtr(10), max: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := Normalize(tt.limit, tt.offset, tt.max)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
