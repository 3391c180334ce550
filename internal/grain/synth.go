package grain

import (
	"runtime"
	"sync"
)

// Channel salts keep the luma field and the two chroma tint fields
// decorrelated while still deriving from the one caller-supplied seed.
const (
	saltLuma    uint32 = 0x5bf03635
	saltChromaU uint32 = 0x2545f491
	saltChromaV uint32 = 0x9e3779b9
)

// Buffer is the per-pixel grain overlay produced by Synthesize. Data is
// interleaved row-major bytes: one alpha byte per pixel without chroma, or an
// (alpha, tintU, tintV) triple with chroma, the tint channels centered at
// 128. The buffer is created fresh per call and owned by the caller.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Data     []uint8
}

// Index returns the offset of pixel (x, y) in Data.
func (b *Buffer) Index(x, y int) int {
	return (y*b.Width + x) * b.Channels
}

// params carries everything the pixel loop needs, derived once per call.
type params struct {
	cfg         Config
	seed        int64
	baseFreq    float64
	cell        int
	shadowScale float64 // 1 - protectShadows * shadowFactor(baseLightness)
	amountScale float64 // amount / 100
	channels    int
}

// Synthesize produces the grain overlay for a width x height image.
// baseLightness summarizes the underlying image's average lightness in [0,1]
// (out-of-range values are clamped; it is a measurement, not configuration).
// The returned buffer is deterministic in (width, height, cfg, baseLightness,
// seed). When cfg.Enabled is false the call returns (nil, nil) without
// allocating: a nil buffer is the explicit absent value.
func Synthesize(width, height int, cfg Config, baseLightness float64, seed int64) (*Buffer, error) {
	if width <= 0 {
		return nil, &ConfigError{Field: "width", Reason: "must be a positive integer"}
	}
	if height <= 0 {
		return nil, &ConfigError{Field: "height", Reason: "must be a positive integer"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, nil
	}

	p := newParams(cfg, baseLightness, seed)
	buf := &Buffer{
		Width:    width,
		Height:   height,
		Channels: p.channels,
		Data:     make([]uint8, width*height*p.channels),
	}
	p.render(buf, runtime.NumCPU())
	return buf, nil
}

func newParams(cfg Config, baseLightness float64, seed int64) *params {
	channels := 1
	if cfg.Chroma.Enabled {
		channels = 3
	}
	return &params{
		cfg:         cfg,
		seed:        seed,
		baseFreq:    sizeBaseFrequency[cfg.Size],
		cell:        sizeCellWidth[cfg.Size],
		shadowScale: 1 - cfg.ProtectShadows*shadowFactor(clamp01(baseLightness)),
		amountScale: cfg.Amount / 100,
		channels:    channels,
	}
}

// render fills the buffer with the given number of workers. Rows are
// distributed in strides; since every pixel depends only on its own
// coordinates, the worker count and evaluation order cannot change the
// result.
func (p *params) render(buf *Buffer, workers int) {
	if workers <= 1 || buf.Height == 1 {
		for y := 0; y < buf.Height; y++ {
			p.renderRow(buf, y)
		}
		return
	}
	if workers > buf.Height {
		workers = buf.Height
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for y := start; y < buf.Height; y += workers {
				p.renderRow(buf, y)
			}
		}(w)
	}
	wg.Wait()
}

func (p *params) renderRow(buf *Buffer, y int) {
	i := buf.Index(0, y)
	for x := 0; x < buf.Width; x++ {
		raw := p.generate(x, y, saltLuma)
		v := applyCurve(p.cfg.IntensityCurve, raw)
		v *= p.shadowScale
		buf.Data[i] = quantize(v * p.amountScale)
		if p.channels == 3 {
			u := (2*p.generate(x, y, saltChromaU) - 1) * p.cfg.Chroma.Intensity
			w := (2*p.generate(x, y, saltChromaV) - 1) * p.cfg.Chroma.Intensity
			buf.Data[i+1] = tintByte(u)
			buf.Data[i+2] = tintByte(w)
		}
		i += p.channels
	}
}

// generate dispatches to the configured generator and returns a raw
// magnitude in [0,1].
func (p *params) generate(x, y int, salt uint32) float64 {
	switch p.cfg.Algorithm {
	case AlgorithmBlueNoise:
		return blueNoise(p.seed, x, y, p.cell, salt)
	default: // AlgorithmFBM
		return fbmNoise(p.seed, float64(x), float64(y), p.baseFreq, p.cfg.Octaves, p.cfg.Lacunarity, p.cfg.Gain, salt)
	}
}

// quantize maps an intensity in [0,1] to a byte, clamping first so that no
// pathological parameter combination can wrap.
func quantize(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// tintByte maps a signed tint in [-1,1] to a 128-centered byte.
func tintByte(t float64) uint8 {
	if t < -1 {
		t = -1
	} else if t > 1 {
		t = 1
	}
	return uint8(128 + t*127 + 0.5)
}
