package mp4muxer

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Frame is one sample of a progressive MP4 video track in Annex B form.
type Frame struct {
	Data       []byte // access unit; keyframes carry the avcC SPS and PPS
	DecodeTime uint64 // in timescale units
	Duration   uint32 // in timescale units
	Timescale  uint32
	IsKeyframe bool
}

// ReadFrames reads up to max samples (all when max <= 0) from the MP4 file
// at path.
func ReadFrames(path string, max int) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ReadFramesFromReader(f, max)
}

// ReadFramesFromReader reads up to max samples from a progressive MP4.
func ReadFramesFromReader(reader io.ReadSeeker, max int) ([]Frame, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}
	if mp4File.IsFragmented() || mp4File.Moov == nil {
		return nil, fmt.Errorf("no moov box found")
	}

	trak := findVideoTrack(mp4File.Moov)
	if trak == nil {
		return nil, ErrNoVideoTrack
	}

	var timescale uint32 = 1
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	stbl := trak.Mdia.Minf.Stbl
	var spsPPS []byte
	for _, child := range stbl.Stsd.Children {
		if avc1, ok := child.(*mp4.VisualSampleEntryBox); ok && avc1.AvcC != nil {
			for _, sps := range avc1.AvcC.SPSnalus {
				spsPPS = append(spsPPS, 0, 0, 0, 1)
				spsPPS = append(spsPPS, sps...)
			}
			for _, pps := range avc1.AvcC.PPSnalus {
				spsPPS = append(spsPPS, 0, 0, 0, 1)
				spsPPS = append(spsPPS, pps...)
			}
		}
	}

	if stbl.Stsz == nil {
		return nil, fmt.Errorf("no stsz box found")
	}
	sampleCount := stbl.Stsz.SampleNumber
	if max > 0 && uint32(max) < sampleCount {
		sampleCount = uint32(max)
	}

	syncSamples := make(map[uint32]bool)
	if stbl.Stss != nil {
		for _, sampleNr := range stbl.Stss.SampleNumber {
			syncSamples[sampleNr] = true
		}
	}

	frames := make([]Frame, 0, sampleCount)
	for sampleNr := uint32(1); sampleNr <= sampleCount; sampleNr++ {
		sample, err := readSample(stbl, reader, sampleNr)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", sampleNr, err)
		}

		var decodeTime uint64
		var dur uint32
		if stbl.Stts != nil {
			decodeTime, dur = stbl.Stts.GetDecodeTime(sampleNr)
		}
		isKeyframe := stbl.Stss == nil || syncSamples[sampleNr]

		var data []byte
		if isKeyframe {
			data = append(data, spsPPS...)
		}
		data = appendAnnexB(data, sample)

		frames = append(frames, Frame{
			Data:       data,
			DecodeTime: decodeTime,
			Duration:   dur,
			Timescale:  timescale,
			IsKeyframe: isKeyframe,
		})
	}

	return frames, nil
}

// readSample reads sample data from a progressive MP4 file.
func readSample(stbl *mp4.StblBox, reader io.ReadSeeker, sampleNr uint32) ([]byte, error) {
	if stbl.Stsc == nil {
		return nil, fmt.Errorf("missing stsc box")
	}

	chunkNr, firstSampleInChunk, err := stbl.Stsc.ChunkNrFromSampleNr(int(sampleNr))
	if err != nil {
		return nil, fmt.Errorf("get chunk nr: %w", err)
	}

	var chunkOffset uint64
	switch {
	case stbl.Stco != nil:
		chunkOffset, err = stbl.Stco.GetOffset(chunkNr)
		if err != nil {
			return nil, fmt.Errorf("get chunk offset: %w", err)
		}
	case stbl.Co64 != nil:
		if chunkNr < 1 || chunkNr > len(stbl.Co64.ChunkOffset) {
			return nil, fmt.Errorf("chunk nr out of range")
		}
		chunkOffset = stbl.Co64.ChunkOffset[chunkNr-1]
	default:
		return nil, fmt.Errorf("no stco or co64 box")
	}

	offset := chunkOffset
	for s := uint32(firstSampleInChunk); s < sampleNr; s++ {
		offset += uint64(stbl.Stsz.GetSampleSize(int(s)))
	}
	size := stbl.Stsz.GetSampleSize(int(sampleNr))

	if _, err := reader.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to sample: %w", err)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	return data, nil
}

// appendAnnexB appends the start-code form of a length-prefixed sample.
func appendAnnexB(dst, sample []byte) []byte {
	for off := 0; off+4 <= len(sample); {
		n := int(sample[off])<<24 | int(sample[off+1])<<16 | int(sample[off+2])<<8 | int(sample[off+3])
		off += 4
		if off+n > len(sample) {
			break
		}
		dst = append(dst, 0, 0, 0, 1)
		dst = append(dst, sample[off:off+n]...)
		off += n
	}
	return dst
}
