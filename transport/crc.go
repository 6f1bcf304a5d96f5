package transport

import "github.com/sigurn/crc16"

// crcTable is CRC16/X.25 (polynomial 0x1021, init 0xFFFF, reflected
// in/out, xor-out 0xFFFF).
var crcTable = crc16.MakeTable(crc16.CRC16_X_25)

// crcEngine accumulates a running CRC over the raw, escaped wire
// bytes of a frame: start sequence through the pad-count byte,
// excluding the two transmitted CRC bytes themselves.
type crcEngine struct {
	crc uint16
}

func newCRCEngine() crcEngine {
	return crcEngine{crc: crc16.Init(crcTable)}
}

func (e *crcEngine) update(b byte) {
	e.crc = crc16.Update(e.crc, []byte{b}, crcTable)
}

func (e *crcEngine) updateBytes(bs []byte) {
	if len(bs) == 0 {
		return
	}

	e.crc = crc16.Update(e.crc, bs, crcTable)
}

// finish returns the completed checksum. The CRC16/X.25 parameters
// are fully reflected, so the numeric result already equals the
// little-endian value transmitted on the wire.
func (e crcEngine) finish() uint16 {
	return crc16.Complete(e.crc, crcTable)
}
