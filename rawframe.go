// Package rawframe converts raw camera frames, NV12 first of all, into packed
// 8-bit RGB images.
package rawframe

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/pion/rawframe/pkg/driver"
	"github.com/pion/rawframe/pkg/frame"
	"github.com/pion/rawframe/pkg/io/video"
	"github.com/pion/rawframe/pkg/prop"
)

var errUnexpectedImage = errors.New("rawframe: conversion did not produce an RGB24 image")

// ConverterOption is a type for specifying Converter options
type ConverterOption func(*Converter)

// WithFormat sets the layout of the raw frames. Default is frame.FormatNV12.
func WithFormat(f frame.Format) ConverterOption {
	return func(c *Converter) {
		c.format = f
	}
}

// WithScaler sets how subsampled chroma is brought up to full resolution.
// Default is video.ScalerNearestNeighbor, which repeats every chroma sample
// over the pixels it covers.
func WithScaler(s video.Scaler) ConverterOption {
	return func(c *Converter) {
		if s != nil {
			c.scaler = s
		}
	}
}

// Converter turns raw frames of a single format into RGB24 images. It keeps no
// state between calls and is safe for concurrent use.
type Converter struct {
	format  frame.Format
	scaler  video.Scaler
	decoder frame.Decoder
}

// NewConverter creates a converter. It fails if the configured format has no
// decoder.
func NewConverter(opts ...ConverterOption) (*Converter, error) {
	c := Converter{
		format: frame.FormatNV12,
		scaler: video.ScalerNearestNeighbor,
	}
	for _, opt := range opts {
		opt(&c)
	}

	decoder, err := frame.NewDecoder(c.format)
	if err != nil {
		return nil, err
	}
	c.decoder = decoder
	return &c, nil
}

// Format returns the raw layout the converter expects.
func (c *Converter) Format() frame.Format {
	return c.format
}

// Convert decodes raw as a width x height frame and returns it as RGB24.
// Invalid dimensions fail with frame.ErrInvalidDimensions and a buffer of the
// wrong size with frame.ErrInvalidBufferLength.
//
// The result never aliases raw, except for frame.FormatRGB24 frames which are
// returned as is.
func (c *Converter) Convert(raw []byte, width, height int) (*frame.RGB24Img, error) {
	decoded := video.ReaderFunc(func() (img image.Image, release func(), err error) {
		return c.decoder.Decode(raw, width, height)
	})

	r := video.Merge(
		video.UpsampleChroma(c.scaler),
		video.ToRGB24,
	)(decoded)

	img, release, err := r.Read()
	if err != nil {
		return nil, err
	}
	defer release()

	rgb, ok := img.(*frame.RGB24Img)
	if !ok {
		return nil, errUnexpectedImage
	}
	// r is dropped here, nothing else holds rgb.Pix.
	out := *rgb
	return &out, nil
}

// Capture reads one width x height frame in the converter's format from src
// and converts it.
func (c *Converter) Capture(ctx context.Context, src driver.FrameReader, width, height int) (*frame.RGB24Img, error) {
	p := prop.Video{Width: width, Height: height, FrameFormat: c.format}
	raw, err := src.ReadFrame(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("rawframe: failed to read %s frame: %w", p, err)
	}
	return c.Convert(raw, width, height)
}

// ConvertNV12 converts a single NV12 frame, a full resolution Y plane followed
// by interleaved U, V samples at half resolution in both directions, into
// RGB24 using full range BT.601 coefficients.
func ConvertNV12(nv12 []byte, width, height int) (*frame.RGB24Img, error) {
	return defaultConverter.Convert(nv12, width, height)
}

var defaultConverter = &Converter{
	format:  frame.FormatNV12,
	scaler:  video.ScalerNearestNeighbor,
	decoder: mustDecoder(frame.FormatNV12),
}

func mustDecoder(f frame.Format) frame.Decoder {
	d, err := frame.NewDecoder(f)
	if err != nil {
		panic(err)
	}
	return d
}
