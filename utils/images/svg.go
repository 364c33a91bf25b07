package images

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"regexp"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGSize is used when viewBox has no size.
const defaultSVGSize = 256

// maxRasterDim bounds pixel dimensions of rasterized pictures, viewBox values
// come from documents and may be arbitrary.
var maxRasterDim = 4096

var strokeWidthRe = regexp.MustCompile(`(stroke-width\s*[=:]\s*["']?)(\d+(?:\.\d+)?)(["']?)`)

// ScaleStrokeWidth multiplies all stroke-width values in svg by factor.
// Small glyph pictures lose thin strokes when downscaled, factor > 1
// compensates.
func ScaleStrokeWidth(svg []byte, factor float64) []byte {
	if factor <= 0 || factor == 1.0 {
		return svg
	}
	return strokeWidthRe.ReplaceAllFunc(svg, func(match []byte) []byte {
		sub := strokeWidthRe.FindSubmatch(match)
		if len(sub) < 4 {
			return match
		}
		value, err := strconv.ParseFloat(string(sub[2]), 64)
		if err != nil {
			return match
		}
		scaled := strconv.FormatFloat(value*factor, 'f', -1, 64)
		res := append([]byte(nil), sub[1]...)
		return append(append(res, scaled...), sub[3]...)
	})
}

// targetSize computes raster size for intrinsic w x h.
//
//   - targetW == 0 && targetH == 0: intrinsic size
//   - only one of targetW/targetH > 0: scale by it keeping aspect ratio
//   - both > 0: fit into the box keeping aspect ratio
func targetSize(intrW, intrH, targetW, targetH int) (int, int) {
	w, h := intrW, intrH
	switch {
	case targetW <= 0 && targetH <= 0:
	case targetH <= 0:
		w = targetW
		h = int(math.Round(float64(w) * float64(intrH) / float64(intrW)))
	case targetW <= 0:
		h = targetH
		w = int(math.Round(float64(h) * float64(intrW) / float64(intrH)))
	default:
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	}
	w, h = max(w, 1), max(h, 1)
	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}
	return w, h
}

// RasterizeSVG renders svg onto transparent image sized per targetSize.
func RasterizeSVG(svg []byte, targetW, targetH int, strokeWidthFactor float64) (image.Image, error) {
	svg = ScaleStrokeWidth(svg, strokeWidthFactor)

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}

	intrW := int(math.Ceil(icon.ViewBox.W))
	intrH := int(math.Ceil(icon.ViewBox.H))
	if intrW <= 0 {
		intrW = defaultSVGSize
	}
	if intrH <= 0 {
		intrH = defaultSVGSize
	}
	w, h := targetSize(intrW, intrH, targetW, targetH)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := imaging.New(w, h, color.Transparent)
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
