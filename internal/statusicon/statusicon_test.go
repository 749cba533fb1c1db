package statusicon

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRender_SizeAndFormat(t *testing.T) {
	for _, size := range []int{16, 32, 64} {
		data, err := Render(false, size)
		if err != nil {
			t.Fatalf("render size %d: %v", size, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode size %d: %v", size, err)
		}
		b := img.Bounds()
		if b.Dx() != size || b.Dy() != size {
			t.Errorf("size %d: got %dx%d", size, b.Dx(), b.Dy())
		}
	}
}

func TestRender_StatesDiffer(t *testing.T) {
	idle, err := Render(false, 64)
	if err != nil {
		t.Fatal(err)
	}
	active, err := Render(true, 64)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(idle, active) {
		t.Error("idle and active icons must differ")
	}

	// The disc away from the arrow carries the state color.
	idleImg, _ := png.Decode(bytes.NewReader(idle))
	activeImg, _ := png.Decode(bytes.NewReader(active))
	ir, ig, _, _ := idleImg.At(48, 44).RGBA()
	ar, ag, _, _ := activeImg.At(48, 44).RGBA()
	if ig <= ir {
		t.Errorf("idle disc should be green-dominant, got r=%d g=%d", ir, ig)
	}
	if ar <= ag {
		t.Errorf("active disc should be red-dominant, got r=%d g=%d", ar, ag)
	}
}

func TestRender_ZeroSizeDefaults(t *testing.T) {
	data, err := Render(true, 0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("default size should be 64, got %d", img.Bounds().Dx())
	}
}
