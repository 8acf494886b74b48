package main

// upscale.go stretches a sub-resolution framebuffer up to window size. The
// host renders fewer pixels than the window when cfg.ResScale < 1 (the
// performance slider spec.md §5 describes as an external control);
// golang.org/x/image/draw does the interpolation instead of a hand-rolled
// nearest-neighbor loop.
import (
	"image"
	"image/draw"

	scaledraw "golang.org/x/image/draw"
)

func newRGBABuffer(width, height int) []byte {
	return make([]byte, width*height*4)
}

func upscaleRGBA(src []byte, srcW, srcH int, dst []byte, dstW, dstH int) {
	srcImg := &image.RGBA{
		Pix:    src,
		Stride: srcW * 4,
		Rect:   image.Rect(0, 0, srcW, srcH),
	}
	dstImg := &image.RGBA{
		Pix:    dst,
		Stride: dstW * 4,
		Rect:   image.Rect(0, 0, dstW, dstH),
	}
	scaledraw.BiLinear.Scale(dstImg, dstImg.Rect, srcImg, srcImg.Rect, draw.Over, nil)
}
