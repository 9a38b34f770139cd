// Package format describes the output image formats and the rules for
// choosing one.
package format

import (
	"strings"

	appErrors "imagetoolbox/internal/errors"
)

// ErrFormatLocked is returned when the selector refuses a change because
// processed files overwrite their sources.
var ErrFormatLocked = appErrors.New(appErrors.CodeFormatLocked, "cannot change image format while overwriting files", nil)

// Format is a concrete encoder choice.
type Format struct {
	Title     string
	Extension string
	MimeType  string
	Lossless  bool
	// HighLevel formats need a modern encoder and are hidden in legacy mode.
	HighLevel bool
}

// ID is a stable identifier suitable for config files.
func (f Format) ID() string {
	return strings.ToLower(f.Extension + ":" + strings.ReplaceAll(f.Title, " ", "_"))
}

// Group bundles the variants of one container format.
type Group struct {
	Title     string
	Formats   []Format
	HighLevel bool
}

var (
	JPG     = Format{Title: "JPG", Extension: "jpg", MimeType: "image/jpeg"}
	MozJPEG = Format{Title: "MozJpeg", Extension: "jpg", MimeType: "image/jpeg"}
	Jpegli  = Format{Title: "Jpegli", Extension: "jpg", MimeType: "image/jpeg"}

	PNGLossless = Format{Title: "PNG Lossless", Extension: "png", MimeType: "image/png", Lossless: true}
	PNGLossy    = Format{Title: "PNG Lossy", Extension: "png", MimeType: "image/png"}

	WebPLossless = Format{Title: "WEBP Lossless", Extension: "webp", MimeType: "image/webp", Lossless: true}
	WebPLossy    = Format{Title: "WEBP Lossy", Extension: "webp", MimeType: "image/webp"}

	AVIFLossless = Format{Title: "AVIF Lossless", Extension: "avif", MimeType: "image/avif", Lossless: true, HighLevel: true}
	AVIFLossy    = Format{Title: "AVIF Lossy", Extension: "avif", MimeType: "image/avif", HighLevel: true}

	HEICLossless = Format{Title: "HEIC Lossless", Extension: "heic", MimeType: "image/heic", Lossless: true, HighLevel: true}
	HEICLossy    = Format{Title: "HEIC Lossy", Extension: "heic", MimeType: "image/heic", HighLevel: true}

	JXLLossless = Format{Title: "JXL Lossless", Extension: "jxl", MimeType: "image/jxl", Lossless: true, HighLevel: true}
	JXLLossy    = Format{Title: "JXL Lossy", Extension: "jxl", MimeType: "image/jxl", HighLevel: true}

	BMP  = Format{Title: "BMP", Extension: "bmp", MimeType: "image/bmp", Lossless: true}
	TIFF = Format{Title: "TIFF", Extension: "tiff", MimeType: "image/tiff", Lossless: true}
	QOI  = Format{Title: "QOI", Extension: "qoi", MimeType: "image/qoi", Lossless: true}
)

// Groups returns the full catalogue in display order.
func Groups() []Group {
	return []Group{
		{Title: "JPEG", Formats: []Format{JPG, MozJPEG, Jpegli}},
		{Title: "PNG", Formats: []Format{PNGLossless, PNGLossy}},
		{Title: "WEBP", Formats: []Format{WebPLossless, WebPLossy}},
		{Title: "AVIF", Formats: []Format{AVIFLossless, AVIFLossy}, HighLevel: true},
		{Title: "HEIC", Formats: []Format{HEICLossless, HEICLossy}, HighLevel: true},
		{Title: "JXL", Formats: []Format{JXLLossless, JXLLossy}, HighLevel: true},
		{Title: "BMP", Formats: []Format{BMP}},
		{Title: "TIFF", Formats: []Format{TIFF}},
		{Title: "QOI", Formats: []Format{QOI}},
	}
}

// Lookup finds a format by ID across the catalogue.
func Lookup(id string) (Format, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, g := range Groups() {
		for _, f := range g.Formats {
			if f.ID() == id {
				return f, true
			}
		}
	}
	return Format{}, false
}

// Flatten lists every format of the given groups in order.
func Flatten(groups []Group) []Format {
	var out []Format
	for _, g := range groups {
		out = append(out, g.Formats...)
	}
	return out
}

// FilterLegacy drops high-level groups and formats.
func FilterLegacy(groups []Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if g.HighLevel {
			continue
		}
		kept := make([]Format, 0, len(g.Formats))
		for _, f := range g.Formats {
			if !f.HighLevel {
				kept = append(kept, f)
			}
		}
		if len(kept) == 0 {
			continue
		}
		g.Formats = kept
		out = append(out, g)
	}
	return out
}

func contains(formats []Format, f Format) bool {
	for _, candidate := range formats {
		if candidate == f {
			return true
		}
	}
	return false
}
