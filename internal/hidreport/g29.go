package hidreport

// InputReportSize is the fixed size, in bytes, of the joystick input
// report BuildG29Descriptor declares and EncodeInputReport produces.
const InputReportSize = 8

// OutputReportSize bounds the vendor-defined output report used to carry
// FFB command bytes from host to device. The canonical command set (§4.C
// analog: internal/ffb) never exceeds 3 bytes; 8 leaves headroom for
// backends translating richer native PID encodings before hand-off.
const OutputReportSize = 8

// NumButtons is the number of discrete button usages the descriptor
// advertises, matching buttonset.NumButtons.
const NumButtons = 13

// BuildG29Descriptor assembles a joystick HID report descriptor exposing
// four 8-bit/16-bit axes (steering, throttle, brake, clutch), a hat switch
// for the D-pad, NumButtons buttons, and a vendor-defined output report
// for inbound FFB packets.
//
// This models the input side closely enough for games to enumerate the
// device as a joystick with the expected axis/button/hat layout; it is
// not a byte-exact clone of the real G29's USB PID force-feedback
// descriptor, which the UHID backend does not attempt to reproduce at the
// wire level (see the FFB command parser instead, which works from the
// canonical command bytes regardless of how the backend's descriptor
// frames its output report).
func BuildG29Descriptor() (Data, error) {
	report := Report{Items: []Item{
		UsagePage{Page: UsagePageGenericDesktop},
		Usage{Usage: UsageJoystick},
		Collection{Kind: CollectionApplication, Items: []Item{
			Collection{Kind: CollectionPhysical, Items: []Item{
				// Steering: signed 16-bit X axis.
				Usage{Usage: UsageX},
				LogicalMinimum{Min: -32768},
				LogicalMaximum{Max: 32767},
				ReportSize{Bits: 16},
				ReportCount{Count: 1},
				Input{Flags: MainData | MainVar | MainAbs},

				// Throttle, brake, clutch: unsigned 8-bit pedals.
				Usage{Usage: UsageY},
				Usage{Usage: UsageZ},
				Usage{Usage: UsageRz},
				LogicalMinimum{Min: 0},
				LogicalMaximum{Max: 255},
				ReportSize{Bits: 8},
				ReportCount{Count: 3},
				Input{Flags: MainData | MainVar | MainAbs},

				// D-pad: 4-bit hat switch, values 0-7, 8 = neutral (null state).
				Usage{Usage: UsageHatSwitch},
				LogicalMinimum{Min: 0},
				LogicalMaximum{Max: 7},
				ReportSize{Bits: 4},
				ReportCount{Count: 1},
				Input{Flags: MainData | MainVar | MainAbs | MainNullState},

				// Padding to byte-align after the hat nibble.
				ReportSize{Bits: 4},
				ReportCount{Count: 1},
				Input{Flags: MainConst},
			}},

			// Buttons, padded out to a whole number of bytes.
			UsagePage{Page: UsagePageButton},
			UsageMinimum{Min: 1},
			UsageMaximum{Max: NumButtons},
			LogicalMinimum{Min: 0},
			LogicalMaximum{Max: 1},
			ReportSize{Bits: 1},
			ReportCount{Count: NumButtons},
			Input{Flags: MainData | MainVar | MainAbs},
			ReportSize{Bits: 1},
			ReportCount{Count: 16 - NumButtons},
			Input{Flags: MainConst},

			// Vendor-defined output report carrying raw FFB command bytes.
			UsagePage{Page: 0xFF00},
			Usage{Usage: 0x01},
			LogicalMinimum{Min: 0},
			LogicalMaximum{Max: 255},
			ReportSize{Bits: 8},
			ReportCount{Count: OutputReportSize},
			Output{Flags: MainData | MainVar | MainAbs},
		}},
	}}

	return report.Bytes()
}

// EncodeInputReport packs one wheel state report into the byte layout
// BuildG29Descriptor declares: X int16 LE, Y/Z/Rz uint8, hat nibble + 4
// padding bits, then NumButtons button bits padded to 16.
func EncodeInputReport(steeringNormalized, throttle, brake, clutch float32, buttons []uint8, dpadX, dpadY int8) []byte {
	out := make([]byte, InputReportSize)

	x := int16(steeringNormalized * 32767)
	out[0] = byte(uint16(x))
	out[1] = byte(uint16(x) >> 8)

	out[2] = scaleUnit(throttle)
	out[3] = scaleUnit(brake)
	out[4] = scaleUnit(clutch)

	out[5] = hatValue(dpadX, dpadY)

	for i := 0; i < NumButtons && i < len(buttons); i++ {
		if buttons[i] != 0 {
			byteIdx := 6 + i/8
			out[byteIdx] |= 1 << uint(i%8)
		}
	}

	return out
}

func scaleUnit(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v * 255)
}

// hatValue maps a D-pad sign pair to the 8-direction hat switch encoding
// (0=up, clockwise, ... 7=up-left), 8=neutral.
func hatValue(dpadX, dpadY int8) uint8 {
	switch {
	case dpadX == 0 && dpadY == -1:
		return 0
	case dpadX == 1 && dpadY == -1:
		return 1
	case dpadX == 1 && dpadY == 0:
		return 2
	case dpadX == 1 && dpadY == 1:
		return 3
	case dpadX == 0 && dpadY == 1:
		return 4
	case dpadX == -1 && dpadY == 1:
		return 5
	case dpadX == -1 && dpadY == 0:
		return 6
	case dpadX == -1 && dpadY == -1:
		return 7
	default:
		return 8
	}
}
