package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/retext"
	"github.com/tsawler/retext/model"
	"github.com/tsawler/retext/pages"
)

const detectionsJSON = `[
  {"quad": [{"x": 10, "y": 10}, {"x": 50, "y": 10}, {"x": 50, "y": 30}, {"x": 10, "y": 30}], "text": "hello", "confidence": 0.9},
  {"quad": [{"x": 10, "y": 50}, {"x": 50, "y": 50}, {"x": 50, "y": 70}, {"x": 10, "y": 70}], "text": "world"}
]`

const detectionsYAML = `detections:
  - quad: [{x: 10, y: 10}, {x: 50, y: 10}, {x: 50, y: 30}, {x: 10, y: 30}]
    text: hello
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writePage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 128, G: 128, B: 128, A: 255}}, image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "page.png")
	require.NoError(t, pages.SavePNG(path, img))
	return path
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{
		"-in", "a.png", "-in", "b.png",
		"-page", "1",
		"-detections", "d.json",
		"-set", "0=first", "-set", "1=second",
		"-out", "out.png",
		"-policy", "alignment",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.png", "b.png"}, opts.inputs)
	assert.Equal(t, 1, opts.page)
	assert.Equal(t, []string{"0=first", "1=second"}, opts.sets)
	assert.Equal(t, "alignment", opts.policy)
	assert.False(t, opts.list)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no input", args: []string{"-detections", "d.json"}, want: "missing -in"},
		{name: "no detections", args: []string{"-in", "a.png"}, want: "-detections or -ocr"},
		{name: "set without out", args: []string{"-in", "a.png", "-ocr", "-set", "0=x"}, want: "-set requires -out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseFlags_DefaultsToList(t *testing.T) {
	opts, err := parseFlags([]string{"-in", "a.png", "-ocr"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.list)
}

func TestLoadDetections(t *testing.T) {
	dets, err := loadDetections(writeFile(t, "d.json", detectionsJSON))
	require.NoError(t, err)
	require.Len(t, dets, 2)
	assert.Equal(t, "hello", dets[0].Text)
	assert.Equal(t, 0.9, dets[0].Confidence)
	assert.Equal(t, model.NoConfidence, dets[1].Confidence)
	assert.Equal(t, model.Point{X: 50, Y: 30}, dets[0].Quad[model.BottomRight])

	dets, err = loadDetections(writeFile(t, "d.yaml", detectionsYAML))
	require.NoError(t, err)
	require.Len(t, dets, 1)
	assert.Equal(t, "hello", dets[0].Text)

	_, err = loadDetections(writeFile(t, "d.txt", "x"))
	assert.ErrorContains(t, err, "unsupported detections file format")

	_, err = loadDetections(writeFile(t, "bad.json", "{"))
	assert.Error(t, err)
}

func TestParseSet(t *testing.T) {
	regions := []model.Region{{ID: "a"}, {ID: "b"}}

	id, text, err := parseSet(`1=two\nlines`, regions)
	require.NoError(t, err)
	assert.Equal(t, "b", id)
	assert.Equal(t, "two\nlines", text)

	id, text, err = parseSet("a=x=y", regions)
	require.NoError(t, err)
	assert.Equal(t, "a", id)
	assert.Equal(t, "x=y", text)

	_, _, err = parseSet("5=x", regions)
	assert.ErrorContains(t, err, "out of range")

	_, _, err = parseSet("zzz=x", regions)
	assert.ErrorIs(t, err, retext.ErrRegionNotFound)

	_, _, err = parseSet("novalue", regions)
	assert.ErrorContains(t, err, "want id=text")
}

func TestRun_List(t *testing.T) {
	opts := options{
		inputs:     []string{writePage(t)},
		detections: writeFile(t, "d.json", detectionsJSON),
		list:       true,
	}

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &stdout, io.Discard))

	out := stdout.String()
	assert.Contains(t, out, `"hello"`)
	assert.Contains(t, out, `"world"`)
	assert.Contains(t, out, retext.RegionID(0, 0))
}

func TestRun_Edit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	opts := options{
		inputs:     []string{writePage(t)},
		detections: writeFile(t, "d.json", detectionsJSON),
		sets:       []string{"0="},
		out:        out,
		list:       true,
	}

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &stdout, io.Discard))

	img, err := pages.LoadImage(out)
	require.NoError(t, err)

	r, g, b, _ := img.At(20, 20).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, _, _, _ = img.At(20, 40).RGBA()
	assert.Equal(t, uint32(128*0x101), r)

	// listing reflects the committed edit
	assert.Contains(t, stdout.String(), `""`)
}

func TestRun_InvalidPolicy(t *testing.T) {
	opts := options{
		inputs:     []string{writePage(t)},
		detections: writeFile(t, "d.json", detectionsJSON),
		policy:     "kmeans",
	}
	assert.Error(t, run(context.Background(), opts, io.Discard, io.Discard))
}
