package mp4muxer

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/avc"
	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framemux/pkg/ports"
)

// Inspector implements ports.MovieInspector for MP4 files.
type Inspector struct{}

// Inspect reads the video track summary of the MP4 file at path.
func (Inspector) Inspect(path string) (*ports.TrackInfo, error) {
	return Inspect(path)
}

// Inspect reads the video track summary of the MP4 file at path.
func Inspect(path string) (*ports.TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return InspectReader(f)
}

// InspectReader reads the video track summary from an io.ReadSeeker.
func InspectReader(reader io.ReadSeeker) (*ports.TrackInfo, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return nil, fmt.Errorf("no moov box found")
	}

	trak := findVideoTrack(moov)
	if trak == nil {
		return nil, ErrNoVideoTrack
	}

	info := &ports.TrackInfo{Fragmented: mp4File.IsFragmented()}
	if trak.Mdia.Mdhd != nil {
		info.Timescale = trak.Mdia.Mdhd.Timescale
		if info.Timescale > 0 {
			info.Duration = float64(trak.Mdia.Mdhd.Duration) / float64(info.Timescale)
		}
	}

	stbl := trak.Mdia.Minf.Stbl
	for _, child := range stbl.Stsd.Children {
		info.Codec = child.Type()
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
			if vse.AvcC != nil {
				info.SPSCount = len(vse.AvcC.SPSnalus)
				info.PPSCount = len(vse.AvcC.PPSnalus)
				if info.SPSCount > 0 {
					if sps, err := avc.ParseSPSNALUnit(vse.AvcC.SPSnalus[0], false); err == nil {
						info.Profile = sps.Profile
						info.Level = sps.Level
					}
				}
			}
		}
		break
	}

	if stbl.Stsz != nil {
		info.SampleCount = int(stbl.Stsz.SampleNumber)
	}
	info.SyncSamples = info.SampleCount
	if stbl.Stss != nil {
		info.SyncSamples = len(stbl.Stss.SampleNumber)
	}
	if info.Duration > 0 {
		info.FrameRate = float64(info.SampleCount) / info.Duration
	}

	return info, nil
}

// findVideoTrack returns the first track with a vide handler and a sample table.
func findVideoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
			continue
		}
		return trak
	}
	return nil
}

var _ ports.MovieInspector = Inspector{}
