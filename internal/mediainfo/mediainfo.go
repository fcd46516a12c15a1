package mediainfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/vansante/go-ffprobe.v2"
)

// MediaInfo is the technical metadata of a local media file, as reported by
// ffprobe.
type MediaInfo struct {
	VideoCodec   string
	Width        int
	Height       int
	VideoBitrate int
	VideoFPS     float64
	ScanType     string

	AudioCodec             string
	AudioBitrate           int
	AudioStreamChannels    int
	AudioContainerChannels int
	AudioLanguages         []string

	Subtitles []string

	RunTime time.Duration
}

// AudioChannelCount returns the stream-level channel count when known,
// otherwise the container-level count.
func (m *MediaInfo) AudioChannelCount() int {
	if m.AudioStreamChannels > 0 {
		return m.AudioStreamChannels
	}
	return m.AudioContainerChannels
}

// probeFunc defines the function signature used to execute ffprobe.
type probeFunc func(ctx context.Context, path string, extraOpts ...string) (*ffprobe.ProbeData, error)

// Prober extracts MediaInfo from files on disk.
type Prober struct {
	probe probeFunc
}

// NewProber creates a prober backed by the ffprobe binary on PATH.
func NewProber() *Prober {
	return &Prober{probe: ffprobe.ProbeURL}
}

// Probe inspects the file at path and returns its technical metadata.
func (p *Prober) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	data, err := p.probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	return fromProbeData(data), nil
}

func fromProbeData(data *ffprobe.ProbeData) *MediaInfo {
	info := &MediaInfo{}
	if data == nil {
		return info
	}

	if data.Format != nil {
		info.RunTime = data.Format.Duration()
	}

	if v := data.FirstVideoStream(); v != nil {
		info.VideoCodec = v.CodecName
		info.Width = v.Width
		info.Height = v.Height
		info.VideoBitrate = atoiSafe(v.BitRate)
		info.VideoFPS = parseFrameRate(v.AvgFrameRate)
		info.ScanType = scanType(v.FieldOrder)
	}

	if a := data.FirstAudioStream(); a != nil {
		info.AudioCodec = a.CodecName
		info.AudioBitrate = atoiSafe(a.BitRate)
		info.AudioStreamChannels = a.Channels
	}

	for _, s := range data.StreamType(ffprobe.StreamAudio) {
		if lang := s.Tags.Language; lang != "" {
			info.AudioLanguages = appendUnique(info.AudioLanguages, lang)
		}
	}

	for _, s := range data.StreamType(ffprobe.StreamSubtitle) {
		if lang := s.Tags.Language; lang != "" {
			info.Subtitles = appendUnique(info.Subtitles, lang)
		}
	}

	return info
}

// scanType maps ffprobe's field_order values onto the progressive/interlaced
// vocabulary media centers expect.
func scanType(fieldOrder string) string {
	switch strings.ToLower(fieldOrder) {
	case "progressive":
		return "Progressive"
	case "tt", "bb", "tb", "bt", "interlaced":
		return "Interlaced"
	default:
		return ""
	}
}

// parseFrameRate evaluates ffprobe's rational frame rates ("24000/1001").
func parseFrameRate(rate string) float64 {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		f, _ := strconv.ParseFloat(rate, 64)
		return f
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
