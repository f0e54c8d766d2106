package hidreport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwheel/g29emu/internal/hidreport"
)

func TestBuildG29DescriptorProducesNonEmptyBytes(t *testing.T) {
	data, err := hidreport.BuildG29Descriptor()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestEncodeInputReportSize(t *testing.T) {
	buttons := make([]uint8, hidreport.NumButtons)
	out := hidreport.EncodeInputReport(0, 0, 0, 0, buttons, 0, 0)
	assert.Len(t, out, hidreport.InputReportSize)
}

func TestEncodeInputReportSteeringCenter(t *testing.T) {
	buttons := make([]uint8, hidreport.NumButtons)
	out := hidreport.EncodeInputReport(0, 0, 0, 0, buttons, 0, 0)
	assert.Equal(t, byte(0), out[0])
	assert.Equal(t, byte(0), out[1])
}

func TestEncodeInputReportSteeringExtremes(t *testing.T) {
	buttons := make([]uint8, hidreport.NumButtons)

	right := hidreport.EncodeInputReport(1, 0, 0, 0, buttons, 0, 0)
	x := int16(uint16(right[0]) | uint16(right[1])<<8)
	assert.Greater(t, x, int16(30000))

	left := hidreport.EncodeInputReport(-1, 0, 0, 0, buttons, 0, 0)
	x = int16(uint16(left[0]) | uint16(left[1])<<8)
	assert.Less(t, x, int16(-30000))
}

func TestEncodeInputReportPedalsScaleToFullByte(t *testing.T) {
	buttons := make([]uint8, hidreport.NumButtons)
	out := hidreport.EncodeInputReport(0, 1, 1, 1, buttons, 0, 0)
	assert.Equal(t, byte(255), out[2])
	assert.Equal(t, byte(255), out[3])
	assert.Equal(t, byte(255), out[4])
}

func TestEncodeInputReportPedalsClampOutOfRangeInput(t *testing.T) {
	buttons := make([]uint8, hidreport.NumButtons)
	out := hidreport.EncodeInputReport(0, 2, -1, 0.5, buttons, 0, 0)
	assert.Equal(t, byte(255), out[2]) // throttle=2 clamps to 1.0 -> 255
	assert.Equal(t, byte(0), out[3])   // brake=-1 clamps to 0
}

func TestEncodeInputReportHatDirections(t *testing.T) {
	cases := []struct {
		name       string
		dx, dy     int8
		wantNibble uint8
	}{
		{"up", 0, -1, 0},
		{"up-right", 1, -1, 1},
		{"right", 1, 0, 2},
		{"down-right", 1, 1, 3},
		{"down", 0, 1, 4},
		{"down-left", -1, 1, 5},
		{"left", -1, 0, 6},
		{"up-left", -1, -1, 7},
		{"neutral", 0, 0, 8},
	}
	buttons := make([]uint8, hidreport.NumButtons)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := hidreport.EncodeInputReport(0, 0, 0, 0, buttons, tc.dx, tc.dy)
			assert.Equal(t, tc.wantNibble, out[5]&0x0F)
		})
	}
}

func TestEncodeInputReportButtonBits(t *testing.T) {
	buttons := make([]uint8, hidreport.NumButtons)
	buttons[0] = 1
	buttons[8] = 1
	out := hidreport.EncodeInputReport(0, 0, 0, 0, buttons, 0, 0)
	assert.Equal(t, byte(0x01), out[6])
	assert.Equal(t, byte(0x01), out[7])
}
