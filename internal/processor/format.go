package processor

import "bytes"

// Format is the detected input format
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatImage
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatImage:
		return "image"
	default:
		return "unknown"
	}
}

// DetectFormat identifies the input format from magic bytes. Images are
// detected separately from unknown input so callers can tell users that
// scanned images need a text layer rather than that the file is garbage.
func DetectFormat(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	if bytes.HasPrefix(data, []byte("%PDF")) {
		return FormatPDF
	}

	// PNG
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return FormatImage
	}
	// JPEG
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return FormatImage
	}
	// TIFF
	if (data[0] == 0x49 && data[1] == 0x49) || (data[0] == 0x4D && data[1] == 0x4D) {
		return FormatImage
	}

	return FormatUnknown
}
