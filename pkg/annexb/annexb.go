// Package annexb handles H.264 Annex B byte streams.
package annexb

import (
	"encoding/binary"

	"github.com/Eyevinn/mp4ff/avc"
)

// Split returns the NAL units of an Annex B stream without start codes.
// The returned slices alias data.
func Split(data []byte) [][]byte {
	var nalus [][]byte
	start := -1
	i := 0

	for i < len(data) {
		// 3-byte start code; a 4-byte one is a zero byte followed by it
		if i+2 < len(data) && data[i] == 0 && data[i+1] == 0 && data[i+2] == 1 {
			if start >= 0 {
				nalus = appendNALU(nalus, data[start:i])
			}
			i += 3
			start = i
			continue
		}
		i++
	}

	if start >= 0 && start < len(data) {
		nalus = appendNALU(nalus, data[start:])
	}
	return nalus
}

// appendNALU appends nalu without the trailing zero bytes that belong to the
// next start code.
func appendNALU(nalus [][]byte, nalu []byte) [][]byte {
	end := len(nalu)
	for end > 0 && nalu[end-1] == 0 {
		end--
	}
	if end == 0 {
		return nalus
	}
	return append(nalus, nalu[:end])
}

// ParameterSets returns copies of the SPS and PPS NAL units found in an
// Annex B access unit, in stream order.
func ParameterSets(data []byte) (sps, pps [][]byte) {
	for _, nalu := range Split(data) {
		switch avc.GetNaluType(nalu[0]) {
		case avc.NALU_SPS:
			sps = append(sps, append([]byte(nil), nalu...))
		case avc.NALU_PPS:
			pps = append(pps, append([]byte(nil), nalu...))
		}
	}
	return sps, pps
}

// AppendAVCC appends the length-prefixed (4 byte) form of an Annex B access
// unit to dst. SPS and PPS units are dropped since they live in the sample
// entry.
func AppendAVCC(dst, data []byte) []byte {
	var length [4]byte
	for _, nalu := range Split(data) {
		switch avc.GetNaluType(nalu[0]) {
		case avc.NALU_SPS, avc.NALU_PPS:
			continue
		}
		binary.BigEndian.PutUint32(length[:], uint32(len(nalu)))
		dst = append(dst, length[:]...)
		dst = append(dst, nalu...)
	}
	return dst
}
