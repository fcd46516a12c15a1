package parse

import "regexp"

// Pattern compilation for movie file parsing
var (
	// File type patterns
	videoRe    = regexp.MustCompile(`(?i)\.(mp4|mkv|avi|mov|wmv|flv|webm|mpeg|mpg|m4v|3gp|vob|ts|mts|m2ts|rmvb|divx)$`)
	subtitleRe = regexp.MustCompile(`(?i)\.(srt|sub|idx|ass|ssa|smi|vtt|sbv|sami|sup|ttml)$`)
	nfoRe      = regexp.MustCompile(`(?i)\.nfo$`)
	imageRe    = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|webp|tiff?)$`)

	// Year extraction. Anything from 1801 on counts as a plausible movie year.
	yearRe = regexp.MustCompile(`(?:^|[^\d])((1[89]|20)\d{2})(?:[\s\-–—]+(?:1[89]|20)\d{2})?(?:[^\d]|$)`)

	// Embedded IMDb identifiers (tt0133093)
	imdbIDRe = regexp.MustCompile(`\b(tt\d{7,8})\b`)

	// Encoding tags to remove
	encodingTagsRe = regexp.MustCompile(`(?i)\b(?:HD|HDR|DV|x265|x264|H\.?264|H\.?265|HEVC|AVC|AAC|AC3|DD|DTS|FLAC|MP3|WEB-?DL|BluRay|BDRip|DVDRip|HDTV|720p|1080p|2160p|4K|UHD|SDR|10bit|8bit|PROPER|REPACK|iNTERNAL|LiMiTED|UNRATED|EXTENDED|DiRECTORS?\.?CUT|THEATRICAL|COMPLETE|MULTI|DUAL|DUBBED|SUBBED|SUB|RETAIL|WS|FS|NTSC|PAL|R[1-6]|UNCUT|UNCENSORED)\b`)

	// Empty brackets left behind after tag removal
	emptyBracketsRe = regexp.MustCompile(`\s*[\(\[\{<]\s*[\)\]\}>]`)
)

// IsVideo checks if the filename has a video extension.
func IsVideo(filename string) bool {
	return videoRe.MatchString(filename)
}

// IsSubtitle checks if the filename has a subtitle extension.
func IsSubtitle(filename string) bool {
	return subtitleRe.MatchString(filename)
}

// IsNFO checks if the filename has an NFO extension.
func IsNFO(filename string) bool {
	return nfoRe.MatchString(filename)
}

// IsImage checks if the filename has an image extension.
func IsImage(filename string) bool {
	return imageRe.MatchString(filename)
}
