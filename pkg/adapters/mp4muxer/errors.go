package mp4muxer

import "errors"

var (
	// ErrNoParameterSets is returned when a sample entry is set without SPS or PPS.
	ErrNoParameterSets = errors.New("mp4muxer: no parameter sets")

	// ErrTrackExists is returned when a second track is added.
	ErrTrackExists = errors.New("mp4muxer: container already has a video track")

	// ErrNoTrack is returned when finalizing a container without a track.
	ErrNoTrack = errors.New("mp4muxer: container has no video track")

	// ErrNoSampleEntry is returned when finalizing a track without a sample entry.
	ErrNoSampleEntry = errors.New("mp4muxer: track has no sample entry")

	// ErrFinalized is returned when writing to a finalized or closed container.
	ErrFinalized = errors.New("mp4muxer: container already finalized")

	// ErrInvalidPacket is returned for packets with no slice data or bad timing.
	ErrInvalidPacket = errors.New("mp4muxer: invalid packet")

	// ErrTooLarge is returned when the media data would exceed 32-bit offsets.
	ErrTooLarge = errors.New("mp4muxer: media data exceeds 4 GiB")

	// ErrNoVideoTrack is returned when an inspected file has no video track.
	ErrNoVideoTrack = errors.New("mp4muxer: no video track found")
)
