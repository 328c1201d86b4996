// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texreports/arrestx/pkg/types"
)

func TestReclassify_MovesBookingFromAddress(t *testing.T) {
	records := []types.Record{{
		Address: []string{"25-0555555 THEFT", "12 OAK ST"},
		Charges: []types.Charge{},
	}}

	Reclassify(records)

	r := records[0]
	assert.Equal(t, []string{"12 OAK ST"}, r.Address)
	require.Len(t, r.Charges, 1)
	assert.Equal(t, types.Charge{BookingNo: "25-0555555", Description: "THEFT"}, r.Charges[0])
}

func TestReclassify_MovesTrailingAddressFromCharge(t *testing.T) {
	records := []types.Record{{
		Address: []string{"APT 4B"},
		Charges: []types.Charge{
			{BookingNo: "25-0123456", Description: "ASSAULT 900 MAPLE AVE ORLANDO FL 32801"},
		},
	}}

	Reclassify(records)

	r := records[0]
	assert.Equal(t, "ASSAULT", r.Charges[0].Description)
	assert.Equal(t, []string{"APT 4B", "900 MAPLE AVE ORLANDO FL 32801"}, r.Address)
}

func TestReclassify_FullAddressLeavesChargeAlone(t *testing.T) {
	records := []types.Record{{
		Address: []string{"A", "B", "C"},
		Charges: []types.Charge{
			{BookingNo: "25-0123456", Description: "ASSAULT 900 MAPLE AVE ORLANDO FL 32801"},
		},
	}}

	Reclassify(records)

	r := records[0]
	assert.Equal(t, "ASSAULT 900 MAPLE AVE ORLANDO FL 32801", r.Charges[0].Description)
	assert.Equal(t, []string{"A", "B", "C"}, r.Address)
}

func TestReclassify_Idempotent(t *testing.T) {
	records := []types.Record{{
		Address: []string{"25-0555555 THEFT"},
		Charges: []types.Charge{
			{BookingNo: "25-0123456", Description: "ASSAULT 900 MAPLE AVE ORLANDO FL 32801"},
		},
	}}

	Reclassify(records)
	first := records[0]

	Reclassify(records)
	assert.Equal(t, first, records[0])
}
