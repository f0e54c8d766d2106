package uhid

import "encoding/binary"

// Linux /dev/uhid event types (uapi/linux/uhid.h). Both uhid_create2_req
// and uhid_event are declared __attribute__((__packed__)) in the kernel
// header, so these sizes have no implicit padding.
const (
	evCreate2 uint32 = 11
	evDestroy uint32 = 1
	evStart   uint32 = 2
	evStop    uint32 = 3
	evOpen    uint32 = 4
	evClose   uint32 = 5
	evOutput  uint32 = 6
	evInput2  uint32 = 12
)

const (
	dataMax             = 4096
	maxDescriptorSize   = 4096
	create2PayloadSize  = 128 + 64 + 64 + 2 + 2 + 4 + 4 + 4 + 4 + maxDescriptorSize // 4372
	input2PayloadSize   = 2 + dataMax                                              // 4098
	outputPayloadSize   = dataMax + 2 + 1                                          // 4099
	eventPayloadSize    = create2PayloadSize                                       // largest union member
	eventSize           = 4 + eventPayloadSize
	busUSB       uint16 = 0x03
)

// buildEvent lays out a full uhid_event: a 4-byte type tag followed by the
// union payload, zero-padded to the union's largest member so every write
// is a fixed eventSize buffer regardless of which variant it carries.
func buildEvent(evType uint32, payload []byte) []byte {
	buf := make([]byte, eventSize)
	binary.LittleEndian.PutUint32(buf[0:4], evType)
	copy(buf[4:], payload)
	return buf
}

// buildCreate2 packs a uhid_create2_req: name/phys/uniq byte arrays, then
// rd_size, bus, vendor, product, version, country, then the report
// descriptor bytes.
func buildCreate2(name string, rdData []byte, vendor, product, version uint32) []byte {
	buf := make([]byte, create2PayloadSize)
	copy(buf[0:128], []byte(truncate(name, 127)))

	const (
		offRdSize  = 256
		offBus     = 258
		offVendor  = 260
		offProduct = 264
		offVersion = 268
		offCountry = 272
		offRdData  = 276
	)
	binary.LittleEndian.PutUint16(buf[offRdSize:offRdSize+2], uint16(len(rdData)))
	binary.LittleEndian.PutUint16(buf[offBus:offBus+2], busUSB)
	binary.LittleEndian.PutUint32(buf[offVendor:offVendor+4], vendor)
	binary.LittleEndian.PutUint32(buf[offProduct:offProduct+4], product)
	binary.LittleEndian.PutUint32(buf[offVersion:offVersion+4], version)
	binary.LittleEndian.PutUint32(buf[offCountry:offCountry+4], 0)
	copy(buf[offRdData:offRdData+len(rdData)], rdData)

	return buildEvent(evCreate2, buf)
}

// buildInput2 packs a uhid_input2_req: a size prefix followed by the
// report bytes.
func buildInput2(data []byte) []byte {
	buf := make([]byte, input2PayloadSize)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(data)))
	copy(buf[2:2+len(data)], data)
	return buildEvent(evInput2, buf)
}

func buildDestroy() []byte {
	return buildEvent(evDestroy, nil)
}

// parseOutput extracts the raw output bytes from a uhid_output_req union
// payload (data[4096], size uint16, rtype uint8).
func parseOutput(union []byte) []byte {
	if len(union) < outputPayloadSize {
		return nil
	}
	size := binary.LittleEndian.Uint16(union[dataMax : dataMax+2])
	if int(size) > dataMax {
		size = dataMax
	}
	return union[:size]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
