package h264encoder

// bitWriter writes big-endian bit fields into a reusable buffer.
type bitWriter struct {
	data   []byte
	bitPos int
}

func (bw *bitWriter) reset() {
	bw.data = bw.data[:0]
	bw.bitPos = 0
}

// writeBits writes the low numBits bits of value, most significant first.
func (bw *bitWriter) writeBits(value uint32, numBits int) {
	for numBits > 0 {
		if bw.bitPos == 0 {
			bw.data = append(bw.data, 0)
		}

		n := 8 - bw.bitPos
		if n > numBits {
			n = numBits
		}

		bits := (value >> (numBits - n)) & (1<<n - 1)
		bw.data[len(bw.data)-1] |= byte(bits << (8 - bw.bitPos - n))

		bw.bitPos = (bw.bitPos + n) % 8
		numBits -= n
	}
}

func (bw *bitWriter) writeBit(value uint32) {
	bw.writeBits(value&1, 1)
}

func (bw *bitWriter) writeFlag(b bool) {
	if b {
		bw.writeBit(1)
	} else {
		bw.writeBit(0)
	}
}

// writeUE writes an unsigned Exp-Golomb code.
func (bw *bitWriter) writeUE(value uint32) {
	value++
	leadingZeros := 0
	for v := value; v > 1; v >>= 1 {
		leadingZeros++
	}
	bw.writeBits(0, leadingZeros)
	bw.writeBits(value, leadingZeros+1)
}

// writeSE writes a signed Exp-Golomb code.
func (bw *bitWriter) writeSE(value int32) {
	if value <= 0 {
		bw.writeUE(uint32(-value) * 2)
	} else {
		bw.writeUE(uint32(value)*2 - 1)
	}
}

// alignZero pads with zero bits up to the next byte boundary.
func (bw *bitWriter) alignZero() {
	if bw.bitPos != 0 {
		bw.writeBits(0, 8-bw.bitPos)
	}
}

// writeBytes writes byte-aligned raw bytes.
func (bw *bitWriter) writeBytes(b []byte) {
	bw.alignZero()
	bw.data = append(bw.data, b...)
}

// trailingBits writes rbsp_trailing_bits. The stop bit is always written.
func (bw *bitWriter) trailingBits() {
	bw.writeBit(1)
	bw.alignZero()
}

// appendNALU appends a 4-byte start code, the NAL header and rbsp with
// emulation prevention bytes inserted.
func appendNALU(dst []byte, nalType, refIdc byte, rbsp []byte) []byte {
	dst = append(dst, 0, 0, 0, 1, refIdc<<5|nalType)

	zeros := 0
	for _, b := range rbsp {
		if zeros >= 2 && b <= 3 {
			dst = append(dst, 0x03)
			zeros = 0
		}
		dst = append(dst, b)
		if b == 0 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return dst
}
