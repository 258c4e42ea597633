package curve

import (
	"math"
	"reflect"
	"testing"
)

func TestXForFrequency(t *testing.T) {
	bounds := NewRect(10, 0, 1000, 100)
	tests := []struct {
		freq, want float64
	}{
		{20, 10},
		{40, 110},
		{20480, 1010},
		{0, 10},
		{0.005, 10},
	}
	for _, tt := range tests {
		if got := XForFrequency(tt.freq, 20, 10, bounds); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("XForFrequency(%v) = %v, want %v", tt.freq, got, tt.want)
		}
	}

	for _, f := range []float64{25, 440, 12345} {
		x := XForFrequency(f, 20, 10, bounds)
		if back := FrequencyForX(x, 20, 10, bounds); math.Abs(back-f) > 1e-9*f {
			t.Fatalf("FrequencyForX round trip %v -> %v", f, back)
		}
	}
}

func TestYForMagnitude(t *testing.T) {
	bounds := NewRect(0, 0, 100, 150)
	if got := YForMagnitude(1, -120, 30, bounds); math.Abs(got-30) > 1e-9 {
		t.Fatalf("0 dB -> y=%v, want 30", got)
	}
	if got := YForMagnitude(0, -120, 30, bounds); got != 150 {
		t.Fatalf("silence -> y=%v, want bottom", got)
	}
	if got := YForMagnitude(1e-12, -120, 30, bounds); got != 150 {
		t.Fatalf("below floor -> y=%v, want bottom", got)
	}
	if got := YForDecibels(30, -120, 30, bounds); got != 0 {
		t.Fatalf("ceiling -> y=%v, want top", got)
	}
	if got := YForDecibels(0, 5, 5, bounds); got != 150 {
		t.Fatalf("degenerate range -> y=%v, want bottom", got)
	}
}

func TestYForMagnitudeFloors(t *testing.T) {
	bounds := NewRect(0, 0, 100, 150)
	if got := YForMagnitude(0.1, -40, 0, bounds); math.Abs(got-75) > 1e-9 {
		t.Fatalf("-20 dB -> y=%v, want 75", got)
	}
	for _, mag := range []float64{0, -1, math.NaN(), 1e-12} {
		if got := YForMagnitude(mag, -40, 0, bounds); got != 150 {
			t.Fatalf("YForMagnitude(%v) = %v, want bottom", mag, got)
		}
	}
}

func TestPathReadersOnReturnedValues(t *testing.T) {
	bounds := NewRect(0, 0, 200, 100)
	bins := make([]float64, 65)
	for k := range bins {
		bins[k] = 0.5
	}
	if BuildSpectrum(bins, bounds, DefaultSpectrumConfig(48000, 128)).Empty() {
		t.Fatal("spectrum path is empty")
	}
	if n := BuildResponse([]float64{100, 1000}, []float64{1, 2}, bounds, DefaultResponseConfig()).Len(); n != 2 {
		t.Fatalf("response path has %d elements, want 2", n)
	}
	if !BuildResponse(nil, nil, bounds, DefaultResponseConfig()).Bounds().Empty() {
		t.Fatal("empty response has non-empty bounds")
	}
}

func TestRect(t *testing.T) {
	r := NewRect(5, 10, 20, 40)
	if r.Right() != 25 || r.Bottom() != 50 || r.CentreY() != 30 {
		t.Fatalf("unexpected edges %v %v %v", r.Right(), r.Bottom(), r.CentreY())
	}
	if r.Empty() || !NewRect(0, 0, 0, 1).Empty() {
		t.Fatal("Empty mismatch")
	}
	if !r.Contains(Point{X: 5, Y: 50}) || r.Contains(Point{X: 4, Y: 20}) {
		t.Fatal("Contains mismatch")
	}
}

func TestBuildSpectrumShape(t *testing.T) {
	const fftSize = 4096
	bins := make([]float64, fftSize/2)
	for i := range bins {
		bins[i] = 1 / float64(i+1)
	}
	bounds := NewRect(0, 0, 800, 300)
	p := BuildSpectrum(bins, bounds, DefaultSpectrumConfig(48000, fftSize))

	// move, line, 15 dense cubics, 164 sparse cubics, line, close
	if p.Len() != 183 {
		t.Fatalf("segments = %d, want 183", p.Len())
	}

	first := p.Segments[0]
	if first.Kind != MoveTo || first.Points[0] != (Point{X: 0, Y: 300}) {
		t.Fatalf("first segment = %+v", first)
	}
	if p.Segments[1].Kind != LineTo || p.Segments[1].Points[0].X != 0 {
		t.Fatalf("second segment = %+v", p.Segments[1])
	}
	last := p.Segments[p.Len()-2]
	if last.Kind != LineTo || last.Points[0] != (Point{X: 800, Y: 300}) {
		t.Fatalf("closing line = %+v", last)
	}
	if p.Segments[p.Len()-1].Kind != Close {
		t.Fatal("path not closed")
	}

	for i, s := range p.Segments[2 : p.Len()-2] {
		if s.Kind != CubicTo {
			t.Fatalf("segment %d kind %v, want cubic", i+2, s.Kind)
		}
		for _, pt := range s.Points {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
				t.Fatalf("segment %d has NaN point", i+2)
			}
		}
	}

	// Dense step spans bins 0,2,4; the first sparse segment starts at bin 90.
	dense := p.Segments[2+1]
	wantX := XForFrequency(48000*8.0/fftSize, 20, 10, bounds)
	if math.Abs(dense.Points[1].X-wantX) > 1e-9 {
		t.Fatalf("dense control x = %v, want %v", dense.Points[1].X, wantX)
	}
	sparse := p.Segments[2+15]
	wantX = XForFrequency(48000*90.0/fftSize, 20, 10, bounds)
	if math.Abs(sparse.Points[0].X-wantX) > 1e-9 {
		t.Fatalf("sparse control x = %v, want %v", sparse.Points[0].X, wantX)
	}
}

func TestBuildSpectrumIsDeterministic(t *testing.T) {
	bins := make([]float64, 2048)
	for i := range bins {
		bins[i] = math.Abs(math.Sin(float64(i) * 0.37))
	}
	bounds := NewRect(3, 7, 640, 200)
	cfg := DefaultSpectrumConfig(44100, 4096)

	a := BuildSpectrum(bins, bounds, cfg)
	b := BuildSpectrum(bins, bounds, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical input produced different paths")
	}

	var reused Path
	AppendSpectrum(&reused, bins, bounds, cfg)
	AppendSpectrum(&reused, bins, bounds, cfg)
	if !reflect.DeepEqual(a.Segments, reused.Segments) {
		t.Fatal("AppendSpectrum does not reset the path")
	}
}

func TestBuildSpectrumSilenceSitsOnFloor(t *testing.T) {
	bounds := NewRect(0, 0, 400, 100)
	p := BuildSpectrum(make([]float64, 2048), bounds, DefaultSpectrumConfig(48000, 4096))
	for i, s := range p.Segments {
		n := 1
		switch s.Kind {
		case CubicTo:
			n = 3
		case Close:
			n = 0
		}
		for _, pt := range s.Points[:n] {
			if pt.Y != bounds.Bottom() {
				t.Fatalf("segment %d point y=%v, want bottom", i, pt.Y)
			}
		}
	}
}

func TestBuildSpectrumClampsShortInput(t *testing.T) {
	bins := []float64{1, 0.5, 0.25}
	p := BuildSpectrum(bins, NewRect(0, 0, 100, 100), DefaultSpectrumConfig(48000, 6))
	if p.Empty() || p.Segments[p.Len()-1].Kind != Close {
		t.Fatalf("unexpected path %+v", p.Segments)
	}
	if got := BuildSpectrum(nil, NewRect(0, 0, 1, 1), DefaultSpectrumConfig(48000, 4096)); !got.Empty() {
		t.Fatal("empty bins should give an empty path")
	}
}

func TestBuildResponsePassesThroughPoints(t *testing.T) {
	freqs := []float64{20, 40, 80, 160, 320}
	mags := []float64{1, 2, 1, 0.5, 1}
	bounds := NewRect(0, 0, 1000, 480)
	cfg := DefaultResponseConfig()

	p := BuildResponse(freqs, mags, bounds, cfg)
	if p.Len() != len(freqs) {
		t.Fatalf("segments = %d, want %d", p.Len(), len(freqs))
	}
	if p.Segments[0].Kind != MoveTo {
		t.Fatal("response path must start with MoveTo")
	}
	for i, s := range p.Segments {
		want := Point{
			X: XForFrequency(freqs[i], cfg.MinFreq, cfg.Octaves, bounds),
			Y: YForMagnitude(mags[i], cfg.FloorDB, cfg.CeilDB, bounds),
		}
		if got := s.End(); math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Fatalf("segment %d ends at %+v, want %+v", i, got, want)
		}
	}
}

func TestBuildResponseFlatSitsOnCentre(t *testing.T) {
	freqs := []float64{20, 200, 2000, 20000}
	bounds := NewRect(0, 0, 100, 60)
	p := BuildResponse(freqs, []float64{1, 1, 1, 1}, bounds, DefaultResponseConfig())
	for _, poly := range p.Flatten(4) {
		for _, pt := range poly {
			if math.Abs(pt.Y-bounds.CentreY()) > 1e-9 {
				t.Fatalf("flat response left the centre line: %+v", pt)
			}
		}
	}
	if got := BuildResponse(nil, nil, bounds, DefaultResponseConfig()); !got.Empty() {
		t.Fatal("empty input should give an empty path")
	}
}

func TestFlatten(t *testing.T) {
	var p Path
	p.MoveTo(Point{0, 0})
	p.CubicTo(Point{1, 1}, Point{2, 1}, Point{3, 0})
	p.LineTo(Point{3, 3})
	p.Close()
	p.MoveTo(Point{10, 10})
	p.LineTo(Point{11, 10})

	polys := p.Flatten(3)
	if len(polys) != 2 {
		t.Fatalf("subpaths = %d, want 2", len(polys))
	}
	first := polys[0]
	// start, 3 cubic samples, line end, closing point
	if len(first) != 6 {
		t.Fatalf("first polyline len = %d, want 6", len(first))
	}
	if first[3] != (Point{3, 0}) || first[5] != (Point{0, 0}) {
		t.Fatalf("unexpected polyline %v", first)
	}
	if mid := first[1]; math.Abs(mid.X-1) > 1e-12 {
		t.Fatalf("cubic sample at t=1/3 x=%v, want 1", mid.X)
	}
	if len(polys[1]) != 2 {
		t.Fatalf("second polyline len = %d", len(polys[1]))
	}
}

func TestPathBoundsAndSVG(t *testing.T) {
	var p Path
	if p.Bounds() != (Rect{}) {
		t.Fatal("empty path bounds should be zero")
	}
	p.MoveTo(Point{1, 2})
	p.CubicTo(Point{0, 5}, Point{4, -1}, Point{3, 3})
	p.Close()

	if got := p.Bounds(); got != (Rect{X: 0, Y: -1, Width: 4, Height: 6}) {
		t.Fatalf("Bounds = %+v", got)
	}
	want := "M1.00,2.00 C0.00,5.00 4.00,-1.00 3.00,3.00 Z"
	if got := p.SVG(); got != want {
		t.Fatalf("SVG = %q, want %q", got, want)
	}
}
