package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestParseTypeRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(" " + typ.String() + " ")
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}

	if _, err := ParseType("bartlett"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	sym := Generate(TypeHann, 16)
	per := Generate(TypeHann, 16, WithPeriodic())

	if sym[15] != 0 {
		t.Fatalf("symmetric Hann must end at 0, got %v", sym[15])
	}
	if per[15] == 0 {
		t.Fatal("periodic Hann must not end at 0")
	}
}

func TestNormalizedHasUnitCoherentGain(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeBlackman, TypeFlatTop, TypeKaiser} {
		w, err := Normalized(typ, 4096, WithPeriodic())
		if err != nil {
			t.Fatal(err)
		}

		if g := CoherentGain(w); !almostEqual(g, 1, 1e-9) {
			t.Fatalf("%v coherent gain = %v, want 1", typ, g)
		}
	}
}

func TestCoherentGainMatchesMetadata(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeBlackmanHarris4Term, TypeFlatTop} {
		w := Generate(typ, 8192, WithPeriodic())
		if got, want := CoherentGain(w), Info(typ).CoherentGain; !almostEqual(got, want, 1e-6) {
			t.Fatalf("%v coherent gain = %v, metadata %v", typ, got, want)
		}
	}
}

func TestApplyInPlaceByType(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)

	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestAnalyzeHann(t *testing.T) {
	a, err := Analyze(Generate(TypeHann, 1024, WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(a.ENBW, 1.5, 0.01) {
		t.Fatalf("hann ENBW=%v, want ~1.5", a.ENBW)
	}
	if !almostEqual(a.HighestSidelobedB, -31.5, 0.5) {
		t.Fatalf("hann sidelobe=%v, want ~-31.5", a.HighestSidelobedB)
	}
	if !almostEqual(a.FirstMinimumBins, 2, 0.05) {
		t.Fatalf("hann first minimum=%v, want ~2", a.FirstMinimumBins)
	}
}

func TestAnalyzeMatchesClosedForms(t *testing.T) {
	tests := []struct {
		typ                            Type
		enbw, bw3, null, lobe, scallop float64
	}{
		{TypeRectangular, 1, 0.886, 1, -13.26, -3.92},
		{TypeHann, 1.5, 1.44, 2, -31.47, -1.42},
		{TypeHamming, 1.363, 1.30, 2, -42.7, -1.75},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			a, err := Analyze(Generate(tt.typ, 512, WithPeriodic()))
			if err != nil {
				t.Fatal(err)
			}
			if !almostEqual(a.ENBW, tt.enbw, 0.005) {
				t.Errorf("ENBW=%v, want %v", a.ENBW, tt.enbw)
			}
			if !almostEqual(a.Bandwidth3dB, tt.bw3, 0.02) {
				t.Errorf("3 dB width=%v, want %v", a.Bandwidth3dB, tt.bw3)
			}
			if !almostEqual(a.FirstMinimumBins, tt.null, 0.02) {
				t.Errorf("first null=%v, want %v", a.FirstMinimumBins, tt.null)
			}
			if !almostEqual(a.HighestSidelobedB, tt.lobe, 0.5) {
				t.Errorf("sidelobe=%v, want %v", a.HighestSidelobedB, tt.lobe)
			}
			if !almostEqual(a.ScallopLossdB, tt.scallop, 0.02) {
				t.Errorf("scallop=%v, want %v", a.ScallopLossdB, tt.scallop)
			}
		})
	}
}

func TestAnalyzeFlatTopMainLobe(t *testing.T) {
	a, err := Analyze(Generate(TypeFlatTop, 256, WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.ScallopLossdB) > 0.05 {
		t.Fatalf("flat-top scallop=%v, want ~0", a.ScallopLossdB)
	}
	if a.FirstMinimumBins < 4 {
		t.Fatalf("flat-top first null=%v, want past the main lobe ripple", a.FirstMinimumBins)
	}
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}
	bh4Expected := []float64{
		0.00006, 0.03339172347815117, 0.332833504298565,
		0.8893697722232837, 0.8893697722232838, 0.3328335042985652,
		0.0333917234781512, 0.00006,
	}
	flattopExpected := []float64{
		-0.0004210510000000013, -0.03684077608132298, 0.01070371671636002,
		0.7808739149387524, 0.7808739149387525, 0.010703716716360296,
		-0.03684077608132292, -0.0004210510000000013,
	}
	kaiserExpected := []float64{
		0.002338830460264423, 0.1091958100155291, 0.4871186737556569, 0.9261577358777303,
		0.9261577358777303, 0.4871186737556569, 0.1091958100155291, 0.002338830460264423,
	}

	checkGolden(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	checkGolden(t, Generate(TypeHamming, 8), hammingExpected, 1e-10)
	checkGolden(t, Generate(TypeBlackmanHarris4Term, 8), bh4Expected, 1e-10)
	checkGolden(t, Generate(TypeFlatTop, 8), flattopExpected, 1e-8)
	checkGolden(t, Generate(TypeKaiser, 8, WithAlpha(8)), kaiserExpected, 1e-10)
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	if _, err := Hann(0); err == nil {
		t.Fatal("expected size validation error")
	}

	if _, err := Normalized(TypeHann, -1); err == nil {
		t.Fatal("expected size validation error")
	}

	if err := ApplyCoefficientsInPlace([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected mismatch error")
	}

	if _, err := Analyze(nil); err == nil {
		t.Fatal("expected error for empty window")
	}
	if _, err := Analyze([]float64{1, -1}); err == nil {
		t.Fatal("expected error for zero coherent gain")
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len mismatch got=%d want=%d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got=%.16f want=%.16f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
