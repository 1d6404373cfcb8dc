package decode

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/stripscan/stripscan/internal/imaging"
)

// Bounding boxes for strategy preprocessing. The standard box keeps transform
// cost bounded; the large box is a last resort for dense codes that lose
// their finder patterns when downscaled.
const (
	standardBox = 1024
	largeBox    = 2048
)

// strategy is one named preprocessing + decode attempt in the fallback chain.
// transform may be nil for pass-through strategies.
type strategy struct {
	name      string
	box       int
	transform func(image.Image) image.Image
}

// defaultStrategies returns the fixed chain in priority order.
func defaultStrategies() []strategy {
	return []strategy{
		{name: "plain", box: standardBox},
		{name: "grayscale", box: standardBox, transform: grayscaleNormalize},
		{name: "contrast", box: standardBox, transform: contrastStretch},
		{name: "threshold", box: standardBox, transform: binaryThreshold},
		{name: "sharpen-upscale", box: standardBox, transform: sharpenUpscale},
		{name: "edge-enhance", box: standardBox, transform: edgeEnhance},
		{name: "invert", box: standardBox, transform: invertColors},
		{name: "large-box", box: largeBox},
	}
}

// grayscaleNormalize converts to grayscale and stretches the observed luma
// range to the full 0..255 span. Recovers codes washed out by dim or uneven
// lighting.
func grayscaleNormalize(img image.Image) image.Image {
	gray := toGray(img)
	lo, hi := lumaRange(gray)
	if hi <= lo {
		return gray
	}
	scale := 255.0 / float64(hi-lo)
	for i, v := range gray.Pix {
		gray.Pix[i] = clampU8(float64(v-lo) * scale)
	}
	return gray
}

// contrastStretch applies a linear contrast boost around the midpoint.
func contrastStretch(img image.Image) image.Image {
	const factor = 1.8
	gray := toGray(img)
	for i, v := range gray.Pix {
		gray.Pix[i] = clampU8((float64(v)-128)*factor + 128)
	}
	return gray
}

// binaryThreshold forces every pixel to pure black or white around the mean
// luma. Helps with glare and soft shadows crossing the code area.
func binaryThreshold(img image.Image) image.Image {
	gray := toGray(img)
	mean := lumaMean(gray)
	for i, v := range gray.Pix {
		if v >= mean {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray
}

// sharpenUpscale doubles the resolution and applies a sharpening kernel,
// aimed at slightly out-of-focus captures where module edges have blurred.
func sharpenUpscale(img image.Image) image.Image {
	b := img.Bounds()
	scaled := imaging.Scale(img, b.Dx()*2, b.Dy()*2)
	return convolve3x3(toGray(scaled), [9]float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

// edgeEnhance applies a stronger Laplacian-style kernel that exaggerates
// module boundaries without changing resolution.
func edgeEnhance(img image.Image) image.Image {
	return convolve3x3(toGray(img), [9]float64{
		-1, -1, -1,
		-1, 9, -1,
		-1, -1, -1,
	})
}

// invertColors flips every channel. The per-read photometric inversion in
// readQR works on luminance only; this variant also changes how the
// binarizer buckets mixed-color backgrounds.
func invertColors(img image.Image) image.Image {
	rgba := toRGBA(img)
	for i := 0; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 255 - rgba.Pix[i]
		rgba.Pix[i+1] = 255 - rgba.Pix[i+1]
		rgba.Pix[i+2] = 255 - rgba.Pix[i+2]
	}
	return rgba
}

// toGray collapses the image into a single-channel buffer with a zero origin.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// lumaRange returns the minimum and maximum luma in the buffer.
func lumaRange(gray *image.Gray) (uint8, uint8) {
	lo, hi := uint8(255), uint8(0)
	for _, v := range gray.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// lumaMean returns the average luma in the buffer.
func lumaMean(gray *image.Gray) uint8 {
	if len(gray.Pix) == 0 {
		return 128
	}
	var sum uint64
	for _, v := range gray.Pix {
		sum += uint64(v)
	}
	return uint8(sum / uint64(len(gray.Pix)))
}

// convolve3x3 applies a 3x3 kernel with edge clamping.
func convolve3x3(src *image.Gray, k [9]float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			ki := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sx := clampInt(x+dx, 0, w-1)
					sy := clampInt(y+dy, 0, h-1)
					sum += float64(src.GrayAt(sx, sy).Y) * k[ki]
					ki++
				}
			}
			dst.SetGray(x, y, color.Gray{Y: clampU8(sum)})
		}
	}
	return dst
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
