package config

// Specification of rendered image format.
// ENUM(png, jpeg)
type RenderFormat int

func (f RenderFormat) Ext() string {
	switch f {
	case RenderFormatPng:
		return ".png"
	case RenderFormatJpeg:
		return ".jpg"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of glyph source: embedded Go fonts, fixed bitmap face or
// font files from disk.
// ENUM(builtin, fixed, file)
type FontSource int
