package video

import (
	"image"
	"io"
	"testing"
)

func TestOnce(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	r := Once(img)

	got, release, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	release()
	if got != img {
		t.Fatal("expected the same image on first read")
	}

	for i := 0; i < 2; i++ {
		if _, _, err := r.Read(); err != io.EOF {
			t.Fatalf("expected io.EOF, got %v", err)
		}
	}
}

func TestMerge(t *testing.T) {
	var order []string
	mark := func(name string) TransformFunc {
		return func(r Reader) Reader {
			return ReaderFunc(func() (image.Image, func(), error) {
				img, release, err := r.Read()
				order = append(order, name)
				return img, release, err
			})
		}
	}

	r := Merge(mark("a"), nil, mark("b"))(Once(image.NewGray(image.Rect(0, 0, 1, 1))))
	if _, _, err := r.Read(); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected transforms to run in order, got %v", order)
	}
}
