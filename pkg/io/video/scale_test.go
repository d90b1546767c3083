package video

import (
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsampleChromaNearestNeighbor(t *testing.T) {
	cases := map[string]struct {
		src    *image.YCbCr
		cb, cr []uint8
	}{
		"I420": {
			src: &image.YCbCr{
				SubsampleRatio: image.YCbCrSubsampleRatio420,
				Y: []uint8{
					0x01, 0x02, 0x03, 0x04,
					0x05, 0x06, 0x07, 0x08,
					0x09, 0x0A, 0x0B, 0x0C,
					0x0D, 0x0E, 0x0F, 0x10,
				},
				Cb: []uint8{
					0x10, 0x20,
					0x30, 0x40,
				},
				Cr: []uint8{
					0xA0, 0xB0,
					0xC0, 0xD0,
				},
				YStride: 4,
				CStride: 2,
				Rect:    image.Rect(0, 0, 4, 4),
			},
			cb: []uint8{
				0x10, 0x10, 0x20, 0x20,
				0x10, 0x10, 0x20, 0x20,
				0x30, 0x30, 0x40, 0x40,
				0x30, 0x30, 0x40, 0x40,
			},
			cr: []uint8{
				0xA0, 0xA0, 0xB0, 0xB0,
				0xA0, 0xA0, 0xB0, 0xB0,
				0xC0, 0xC0, 0xD0, 0xD0,
				0xC0, 0xC0, 0xD0, 0xD0,
			},
		},
		"I422": {
			src: &image.YCbCr{
				SubsampleRatio: image.YCbCrSubsampleRatio422,
				Y: []uint8{
					0x01, 0x02, 0x03, 0x04,
					0x05, 0x06, 0x07, 0x08,
				},
				Cb: []uint8{
					0x10, 0x20,
					0x30, 0x40,
				},
				Cr: []uint8{
					0xA0, 0xB0,
					0xC0, 0xD0,
				},
				YStride: 4,
				CStride: 2,
				Rect:    image.Rect(0, 0, 4, 2),
			},
			cb: []uint8{
				0x10, 0x10, 0x20, 0x20,
				0x30, 0x30, 0x40, 0x40,
			},
			cr: []uint8{
				0xA0, 0xA0, 0xB0, 0xB0,
				0xC0, 0xC0, 0xD0, 0xD0,
			},
		},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			img, _, err := UpsampleChroma(ScalerNearestNeighbor)(Once(c.src)).Read()
			require.NoError(t, err)

			out, ok := img.(*image.YCbCr)
			require.True(t, ok)
			assert.Equal(t, image.YCbCrSubsampleRatio444, out.SubsampleRatio)
			assert.Equal(t, c.src.Rect, out.Rect)
			assert.Equal(t, c.src.Rect.Dx(), out.CStride)
			assert.Equal(t, c.src.Y, out.Y)
			assert.Equal(t, c.cb, out.Cb)
			assert.Equal(t, c.cr, out.Cr)
		})
	}
}

func TestUpsampleChromaUniform(t *testing.T) {
	for _, name := range ScalerNames() {
		name := name
		t.Run(name, func(t *testing.T) {
			scaler, err := ParseScaler(name)
			require.NoError(t, err)

			src := image.NewYCbCr(image.Rect(0, 0, 8, 6), image.YCbCrSubsampleRatio420)
			for i := range src.Cb {
				src.Cb[i] = 0x80
				src.Cr[i] = 0x40
			}

			img, _, err := UpsampleChroma(scaler)(Once(src)).Read()
			require.NoError(t, err)
			out := img.(*image.YCbCr)
			require.Len(t, out.Cb, 8*6)
			for i := range out.Cb {
				assert.InDelta(t, 0x80, out.Cb[i], 1, "Cb[%d]", i)
				assert.InDelta(t, 0x40, out.Cr[i], 1, "Cr[%d]", i)
			}
		})
	}
}

func TestUpsampleChromaPassThrough(t *testing.T) {
	i444 := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))

	for _, src := range []image.Image{i444, rgba} {
		img, _, err := UpsampleChroma(nil)(Once(src)).Read()
		require.NoError(t, err)
		assert.Same(t, src, img)
	}
}

func TestUpsampleChromaReusesBuffer(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	r := UpsampleChroma(nil)(ReaderFunc(func() (image.Image, func(), error) {
		return src, func() {}, nil
	}))

	first, _, err := r.Read()
	require.NoError(t, err)
	firstCb := &first.(*image.YCbCr).Cb[0]

	second, _, err := r.Read()
	require.NoError(t, err)
	assert.Same(t, firstCb, &second.(*image.YCbCr).Cb[0])
}

func TestUpsampleChromaSharedTransform(t *testing.T) {
	transform := UpsampleChroma(nil)

	var wg sync.WaitGroup
	results := make([]*image.YCbCr, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
			src.Cb[0] = uint8(i)
			img, _, err := transform(Once(src)).Read()
			if err == nil {
				results[i] = img.(*image.YCbCr)
			}
		}(i)
	}
	wg.Wait()

	for i, img := range results {
		require.NotNil(t, img, "reader %d", i)
		assert.Equal(t, []uint8{uint8(i), uint8(i)}, img.Cb[:2], "reader %d", i)
	}
}

func TestUpsampleChromaReleasesOnError(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	src.SubsampleRatio = image.YCbCrSubsampleRatio(42)

	released := false
	r := UpsampleChroma(nil)(ReaderFunc(func() (image.Image, func(), error) {
		return src, func() { released = true }, nil
	}))
	_, _, err := r.Read()
	assert.ErrorIs(t, err, errUnsupportedSubsampleRatio)
	assert.True(t, released)
}

func TestChromaBounds(t *testing.T) {
	r := image.Rect(0, 0, 5, 3)
	cases := map[image.YCbCrSubsampleRatio]image.Rectangle{
		image.YCbCrSubsampleRatio444: image.Rect(0, 0, 5, 3),
		image.YCbCrSubsampleRatio422: image.Rect(0, 0, 3, 3),
		image.YCbCrSubsampleRatio420: image.Rect(0, 0, 3, 2),
		image.YCbCrSubsampleRatio440: image.Rect(0, 0, 5, 2),
		image.YCbCrSubsampleRatio411: image.Rect(0, 0, 2, 3),
		image.YCbCrSubsampleRatio410: image.Rect(0, 0, 2, 2),
	}
	for sr, expected := range cases {
		b, err := chromaBounds(r, sr)
		require.NoError(t, err, sr.String())
		assert.Equal(t, expected, b, sr.String())

		// Plane sizes must agree with the standard library's allocation.
		img := image.NewYCbCr(r, sr)
		assert.Equal(t, img.CStride, b.Dx(), sr.String())
		assert.Len(t, img.Cb, b.Dx()*b.Dy(), sr.String())
	}
}

func TestParseScaler(t *testing.T) {
	s, err := ParseScaler("Nearest")
	require.NoError(t, err)
	assert.Equal(t, ScalerNearestNeighbor, s)

	s, err = ParseScaler("catmull-rom")
	require.NoError(t, err)
	assert.Equal(t, ScalerCatmullRom, s)

	_, err = ParseScaler("lanczos")
	assert.Error(t, err)

	assert.Equal(t, []string{"approx-bilinear", "bilinear", "catmull-rom", "nearest"}, ScalerNames())
}

func BenchmarkUpsampleChroma(b *testing.B) {
	for name, sz := range imageSizes {
		sz := sz
		b.Run(name, func(b *testing.B) {
			src := image.NewYCbCr(image.Rect(0, 0, sz[0], sz[1]), image.YCbCrSubsampleRatio420)
			r := UpsampleChroma(ScalerNearestNeighbor)(ReaderFunc(func() (image.Image, func(), error) {
				return src, func() {}, nil
			}))
			for i := 0; i < b.N; i++ {
				if _, _, err := r.Read(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
