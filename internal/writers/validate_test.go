// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/texreports/arrestx/pkg/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		records []types.Record
		want    []string
	}{
		{
			name:    "clean records",
			records: sampleRecords(),
			want:    nil,
		},
		{
			name:    "missing name",
			records: []types.Record{{BookInDate: "2025-10-15"}},
			want:    []string{"record 1: missing name"},
		},
		{
			name:    "non ISO date",
			records: []types.Record{{Name: "DOE, JANE", BookInDate: "10/15/2025"}},
			want:    []string{`DOE, JANE: book-in date "10/15/2025" is not ISO 8601`},
		},
		{
			name: "bad booking shape",
			records: []types.Record{{
				Name:    "DOE, JANE",
				Charges: []types.Charge{{BookingNo: "25-12", Description: "BAD"}},
			}},
			want: []string{`DOE, JANE: booking number "25-12" has the wrong shape`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.records))
		})
	}
}
