package decode

import (
	"image"
	"image/draw"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/stripscan/stripscan/internal/imaging"
)

// Result is a successful decode: the recovered payload and the name of the
// preprocessing strategy that produced it.
type Result struct {
	Payload  string
	Strategy string
}

// Decoder runs a fixed, ordered chain of preprocessing strategies over an
// image, attempting a QR read after each. The chain is ordered cheapest and
// most general first; the first non-empty payload wins and later strategies
// never run. A failing strategy is skipped, so only exhaustion of the whole
// chain means "no payload".
//
// A Decoder is safe for concurrent use across uploads. Within one call the
// strategies run strictly sequentially: each materializes a full pixel
// buffer, and running them in parallel would spike memory under load.
type Decoder struct {
	strategies []strategy
}

// New returns a Decoder with the default strategy chain.
func New() *Decoder {
	return &Decoder{strategies: defaultStrategies()}
}

// Decode attempts to recover a QR payload from raw image bytes. It returns
// (nil, nil) when every strategy is exhausted without finding a payload, and
// an error only when the bytes cannot be decoded as an image at all.
func (d *Decoder) Decode(data []byte) (*Result, error) {
	img, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return d.DecodeImage(img), nil
}

// DecodeImage runs the strategy chain over an already-decoded, upright image.
// Returns nil when no strategy finds a payload.
func (d *Decoder) DecodeImage(img image.Image) *Result {
	for _, s := range d.strategies {
		if payload := attempt(s, img); payload != "" {
			return &Result{Payload: payload, Strategy: s.name}
		}
	}
	return nil
}

// minDimension is the size below which a source is aggressively upscaled
// before decoding; QR module edges blur out below this.
const minDimension = 300

// attempt runs one strategy: bounding-box resize, the strategy's transform,
// expansion to a 4-channel buffer, then a QR read in both polarities.
func attempt(s strategy, img image.Image) (payload string) {
	// gozxing can panic on degenerate bitmaps; a failing strategy must not
	// take the rest of the chain down with it.
	defer func() {
		if recover() != nil {
			payload = ""
		}
	}()

	out := imaging.Fit(img, s.box)
	if b := out.Bounds(); max(b.Dx(), b.Dy()) < minDimension {
		out = imaging.Scale(out, b.Dx()*2, b.Dy()*2)
	}
	if s.transform != nil {
		out = s.transform(out)
	}
	return readQR(toRGBA(out))
}

// readQR tries a QR read from the buffer as-is and photometrically inverted
// (light-on-dark codes are common on printed strips).
func readQR(img *image.RGBA) string {
	src := gozxing.NewLuminanceSourceFromImage(img)
	reader := qrcode.NewQRCodeReader()
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	for _, ls := range []gozxing.LuminanceSource{src, src.Invert()} {
		bmp, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(ls))
		if err != nil {
			continue
		}
		result, err := reader.Decode(bmp, hints)
		reader.Reset()
		if err == nil && result.GetText() != "" {
			return result.GetText()
		}
	}
	return ""
}

// toRGBA expands the strategy output into a uniform 4-channel buffer: gray
// sources replicate the single channel, RGB sources get an opaque alpha.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
