// Package qrcode renders order tracking payloads as QR images.
package qrcode

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/skip2/go-qrcode"
)

type trackingGenerator struct {
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewTrackingGenerator creates a QR tracking token generator with the given error correction level.
func NewTrackingGenerator(errorCorrectionLevel string) service.TrackingTokenGenerator {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &trackingGenerator{errorCorrectionLevel: level}
}

// NewTrackingGeneratorFromConfig is the fx constructor.
func NewTrackingGeneratorFromConfig(cfg *config.Config) service.TrackingTokenGenerator {
	return NewTrackingGenerator(cfg.Tracking.ErrorCorrectionLevel)
}

// Generate encodes payload into a width x height PNG. Non-square sizes center the
// largest square code on a white canvas.
func (g *trackingGenerator) Generate(ctx context.Context, payload string, width, height int) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("tracking payload is empty")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid tracking image size %dx%d", width, height)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	qrCode, err := qrcode.New(payload, g.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	if width == height {
		pngBytes, err := qrCode.PNG(width)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate PNG")
		}

		return pngBytes, nil
	}

	side := min(width, height)
	code := qrCode.Image(side)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	offset := image.Pt((width-side)/2, (height-side)/2)
	draw.Draw(canvas, code.Bounds().Add(offset), code, code.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, errors.Wrap(err, "failed to encode PNG")
	}

	return buf.Bytes(), nil
}
