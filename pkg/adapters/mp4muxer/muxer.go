// Package mp4muxer writes progressive MP4 files holding one H.264 video track.
//
// Samples are streamed into a single mdat box as they are appended; the moov
// box with the sample tables is written by Finalize. Box layout is delegated
// to mp4ff.
package mp4muxer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framemux/pkg/annexb"
	"github.com/user/framemux/pkg/ports"
)

const (
	trackID      = 1
	mdatHeadSize = 8
)

// Opener creates MP4 containers on the local file system.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open creates or truncates the file at path and writes the file header.
func (o *Opener) Open(path string) (ports.Container, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	c := &Container{
		file: f,
		w:    bufio.NewWriterSize(f, 1<<20),
	}
	if err := c.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

// Container is an MP4 file being written. It is not safe for concurrent use.
type Container struct {
	file *os.File
	w    *bufio.Writer
	pos  uint64 // bytes written so far

	mdatStart uint64
	track     *Track

	finalized bool
	closed    bool
}

func (c *Container) write(b []byte) error {
	n, err := c.w.Write(b)
	c.pos += uint64(n)
	return err
}

// writeHeader writes ftyp and an mdat header whose size is patched by Finalize.
func (c *Container) writeHeader() error {
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "avc1", "mp41"})
	if err := ftyp.Encode(c.w); err != nil {
		return fmt.Errorf("encode ftyp: %w", err)
	}
	c.pos += ftyp.Size()

	c.mdatStart = c.pos
	var head [mdatHeadSize]byte
	copy(head[4:], "mdat")
	if err := c.write(head[:]); err != nil {
		return fmt.Errorf("write mdat header: %w", err)
	}
	return nil
}

// AddVideoTrack creates the single H.264 track. frameRate is used as the
// media timescale so that one tick is one frame.
func (c *Container) AddVideoTrack(width, height, frameRate int) (ports.Track, error) {
	if c.finalized || c.closed {
		return nil, ErrFinalized
	}
	if c.track != nil {
		return nil, ErrTrackExists
	}
	if width <= 0 || height <= 0 || width > math.MaxUint16 || height > math.MaxUint16 || frameRate <= 0 {
		return nil, fmt.Errorf("mp4muxer: invalid track geometry %dx%d@%d", width, height, frameRate)
	}

	c.track = &Track{
		c:         c,
		width:     width,
		height:    height,
		timescale: uint32(frameRate),
	}
	return c.track, nil
}

// Finalize patches the mdat size, writes the moov box and flushes the file.
func (c *Container) Finalize() error {
	if c.finalized || c.closed {
		return ErrFinalized
	}
	if c.track == nil {
		return ErrNoTrack
	}
	if c.track.avcC == nil {
		return ErrNoSampleEntry
	}

	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("flush samples: %w", err)
	}

	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(c.pos-c.mdatStart))
	if _, err := c.file.WriteAt(size[:], int64(c.mdatStart)); err != nil {
		return fmt.Errorf("patch mdat size: %w", err)
	}

	moov, err := c.track.buildMoov()
	if err != nil {
		return err
	}
	if err := moov.Encode(c.w); err != nil {
		return fmt.Errorf("encode moov: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("flush moov: %w", err)
	}

	c.finalized = true
	return nil
}

// Close closes the file. A container closed without Finalize is not a
// playable MP4. Close is idempotent.
func (c *Container) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", c.file.Name(), err)
	}
	return nil
}

// Track is the H.264 video track of a Container.
type Track struct {
	c *Container

	width, height int
	timescale     uint32

	sizes     []uint32
	offsets   []uint32
	durations []uint32
	nonSync   bool
	sync      []bool
	ctsOffset []int32

	avcC *mp4.AvcCBox
	avcc []byte // reused length-prefixed sample buffer
}

// Append converts pkt to length-prefixed form and writes it into mdat.
// SPS and PPS units are dropped from the sample; they belong in the sample
// entry.
func (t *Track) Append(pkt ports.Packet) error {
	if t.c.finalized || t.c.closed {
		return ErrFinalized
	}
	if pkt.Duration <= 0 || pkt.Duration > math.MaxUint32 {
		return fmt.Errorf("%w: duration %d", ErrInvalidPacket, pkt.Duration)
	}
	if pkt.Timescale != 0 && pkt.Timescale != int64(t.timescale) {
		return fmt.Errorf("%w: timescale %d, track uses %d", ErrInvalidPacket, pkt.Timescale, t.timescale)
	}

	t.avcc = annexb.AppendAVCC(t.avcc[:0], pkt.Data)
	if len(t.avcc) == 0 {
		return fmt.Errorf("%w: no slice data", ErrInvalidPacket)
	}
	if t.c.pos+uint64(len(t.avcc)) > math.MaxUint32 {
		return ErrTooLarge
	}

	offset := t.c.pos
	if err := t.c.write(t.avcc); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}

	t.sizes = append(t.sizes, uint32(len(t.avcc)))
	t.offsets = append(t.offsets, uint32(offset))
	t.durations = append(t.durations, uint32(pkt.Duration))
	t.sync = append(t.sync, pkt.Keyframe)
	if !pkt.Keyframe {
		t.nonSync = true
	}
	t.ctsOffset = append(t.ctsOffset, int32((pkt.PresentationIndex-pkt.DecodeIndex)*pkt.Duration))
	return nil
}

// SetSampleEntry builds the avcC decoder configuration from the given NAL
// units. A later call replaces an earlier one.
func (t *Track) SetSampleEntry(sps, pps [][]byte) error {
	if len(sps) == 0 || len(pps) == 0 {
		return fmt.Errorf("%w: %d SPS, %d PPS", ErrNoParameterSets, len(sps), len(pps))
	}
	avcC, err := mp4.CreateAvcC(sps, pps, true)
	if err != nil {
		return fmt.Errorf("create avcC: %w", err)
	}
	t.avcC = avcC
	return nil
}

// SampleCount returns the number of appended samples.
func (t *Track) SampleCount() int {
	return len(t.sizes)
}

func (t *Track) buildMoov() (*mp4.MoovBox, error) {
	var total uint64
	for _, d := range t.durations {
		total += uint64(d)
	}

	moov := mp4.NewMoovBox()
	mvhd := mp4.CreateMvhd()
	mvhd.Timescale = t.timescale
	mvhd.Duration = total
	mvhd.NextTrackID = trackID + 1
	moov.AddChild(mvhd)

	trak := mp4.CreateEmptyTrak(trackID, t.timescale, "video", "und")
	moov.AddChild(trak)
	trak.Tkhd.Duration = total
	trak.Tkhd.Width = mp4.Fixed32(t.width << 16)
	trak.Tkhd.Height = mp4.Fixed32(t.height << 16)
	trak.Mdia.Mdhd.Duration = total

	stbl := trak.Mdia.Minf.Stbl
	avc1 := mp4.CreateVisualSampleEntryBox("avc1", uint16(t.width), uint16(t.height), t.avcC)
	stbl.Stsd.AddChild(avc1)

	// run-length coded sample durations
	for i, d := range t.durations {
		n := len(stbl.Stts.SampleTimeDelta)
		if i > 0 && stbl.Stts.SampleTimeDelta[n-1] == d {
			stbl.Stts.SampleCount[n-1]++
			continue
		}
		stbl.Stts.SampleCount = append(stbl.Stts.SampleCount, 1)
		stbl.Stts.SampleTimeDelta = append(stbl.Stts.SampleTimeDelta, d)
	}

	// one sample per chunk
	if err := stbl.Stsc.AddEntry(1, 1, 1); err != nil {
		return nil, fmt.Errorf("stsc: %w", err)
	}
	stbl.Stsz.SampleNumber = uint32(len(t.sizes))
	stbl.Stsz.SampleSize = t.sizes
	stbl.Stco.ChunkOffset = t.offsets

	if t.nonSync {
		stss := &mp4.StssBox{}
		for i, s := range t.sync {
			if s {
				stss.SampleNumber = append(stss.SampleNumber, uint32(i+1))
			}
		}
		stbl.AddChild(stss)
	}

	ctts, err := t.buildCtts()
	if err != nil {
		return nil, err
	}
	if ctts != nil {
		stbl.AddChild(ctts)
	}

	return moov, nil
}

// buildCtts returns nil when every composition offset is zero.
func (t *Track) buildCtts() (*mp4.CttsBox, error) {
	var counts []uint32
	var offsets []int32
	needed := false
	for i, off := range t.ctsOffset {
		if off != 0 {
			needed = true
		}
		if i > 0 && offsets[len(offsets)-1] == off {
			counts[len(counts)-1]++
			continue
		}
		counts = append(counts, 1)
		offsets = append(offsets, off)
	}
	if !needed {
		return nil, nil
	}

	ctts := &mp4.CttsBox{}
	for _, off := range offsets {
		if off < 0 {
			ctts.Version = 1
			break
		}
	}
	if err := ctts.AddSampleCountsAndOffset(counts, offsets); err != nil {
		return nil, fmt.Errorf("ctts: %w", err)
	}
	return ctts, nil
}

var (
	_ ports.ContainerOpener = (*Opener)(nil)
	_ ports.Container       = (*Container)(nil)
	_ ports.Track           = (*Track)(nil)
)
