package stats

import (
	"math"
	"testing"
)

func almostEqual(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"simple", []float64{1, 2, 3, 4, 5}, 3},
		{"negative", []float64{-2, 2}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Mean(tc.xs); got != tc.want {
				t.Errorf("Mean = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 0},
		{"constant", []float64{3, 3, 3}, 0},
		{"simple", []float64{1, 2, 3, 4, 5}, 2.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Variance(tc.xs); !almostEqual(got, tc.want, 1e-12) {
				t.Errorf("Variance = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestWelchTTestKnownValues(t *testing.T) {
	// Equal-size, equal-variance samples shifted by one unit:
	// t = -1, df = 8, two-sided p = 0.3466 (reference: R t.test).
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}

	tStat, p, df := WelchTTest(a, b)
	if !almostEqual(tStat, -1, 1e-12) {
		t.Errorf("t = %f, want -1", tStat)
	}
	if !almostEqual(df, 8, 1e-9) {
		t.Errorf("df = %f, want 8", df)
	}
	if !almostEqual(p, 0.3466, 5e-3) {
		t.Errorf("p = %f, want 0.3466", p)
	}
}

func TestWelchTTestSymmetric(t *testing.T) {
	a := []float64{10, 12, 11, 13, 12, 10}
	b := []float64{14, 15, 13, 16, 14, 15}

	t1, p1, df1 := WelchTTest(a, b)
	t2, p2, df2 := WelchTTest(b, a)
	if !almostEqual(t1, -t2, 1e-12) {
		t.Errorf("t not antisymmetric: %f vs %f", t1, t2)
	}
	if !almostEqual(p1, p2, 1e-12) {
		t.Errorf("p not symmetric: %f vs %f", p1, p2)
	}
	if !almostEqual(df1, df2, 1e-12) {
		t.Errorf("df not symmetric: %f vs %f", df1, df2)
	}
}

func TestWelchTTestSeparatedSamples(t *testing.T) {
	a := []float64{99, 100, 101, 100, 99, 101, 100, 99, 101, 100}
	b := make([]float64, len(a))
	for i, x := range a {
		b[i] = x + 20
	}

	_, p, _ := WelchTTest(a, b)
	if p > 1e-6 {
		t.Errorf("p = %g for well-separated samples, want < 1e-6", p)
	}
}

func TestWelchTTestDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		a, b  []float64
		wantT float64
		wantP float64
	}{
		{"identical samples", []float64{5, 5, 5}, []float64{5, 5, 5}, 0, 1},
		{"too few observations", []float64{1}, []float64{2, 3}, 0, 1},
		{"zero variance different means", []float64{1, 1, 1}, []float64{2, 2, 2}, math.Inf(-1), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotT, gotP, _ := WelchTTest(tc.a, tc.b)
			if gotT != tc.wantT {
				t.Errorf("t = %f, want %f", gotT, tc.wantT)
			}
			if gotP != tc.wantP {
				t.Errorf("p = %f, want %f", gotP, tc.wantP)
			}
		})
	}
}

func TestWelchTTestPValueInRange(t *testing.T) {
	cases := [][2][]float64{
		{{1, 2, 3}, {1.1, 2.1, 3.1}},
		{{0.001, 0.002, 0.003, 0.004}, {1000, 2000, 3000, 4000}},
		{{-5, -4, -3}, {3, 4, 5}},
	}
	for _, c := range cases {
		_, p, _ := WelchTTest(c[0], c[1])
		if p < 0 || p > 1 || math.IsNaN(p) {
			t.Errorf("p = %f out of [0,1] for %v vs %v", p, c[0], c[1])
		}
	}
}

func TestCohenD(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
		tol  float64
	}{
		{"known value", []float64{1, 2, 3, 4, 5}, []float64{2, 3, 4, 5, 6}, -0.6325, 1e-4},
		{"no effect", []float64{5, 6, 7}, []float64{5, 6, 7}, 0, 0},
		{"too few observations", []float64{1}, []float64{2, 3}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CohenD(tc.a, tc.b); !almostEqual(got, tc.want, tc.tol) {
				t.Errorf("CohenD = %f, want %f", got, tc.want)
			}
		})
	}

	t.Run("zero pooled deviation", func(t *testing.T) {
		if got := CohenD([]float64{2, 2}, []float64{1, 1}); !math.IsInf(got, 1) {
			t.Errorf("CohenD = %f, want +Inf", got)
		}
	})
}

func TestTCDF(t *testing.T) {
	tests := []struct {
		name  string
		t, df float64
		want  float64
		tol   float64
	}{
		{"center", 0, 10, 0.5, 1e-12},
		{"one sd df=8", 1, 8, 0.82668, 5e-4},
		{"negative mirror", -1, 8, 0.17332, 5e-4},
		{"large t", 10, 30, 1, 1e-6},
		{"df=1 is cauchy", 1, 1, 0.75, 1e-6},
		{"plus infinity", math.Inf(1), 5, 1, 0},
		{"minus infinity", math.Inf(-1), 5, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tCDF(tc.t, tc.df); !almostEqual(got, tc.want, tc.tol) {
				t.Errorf("tCDF(%f, %f) = %f, want %f", tc.t, tc.df, got, tc.want)
			}
		})
	}
}

func TestTCDFMonotonic(t *testing.T) {
	prev := 0.0
	for x := -6.0; x <= 6.0; x += 0.25 {
		cur := tCDF(x, 12)
		if cur < prev {
			t.Fatalf("tCDF not monotone at t=%f: %f < %f", x, cur, prev)
		}
		prev = cur
	}
}

func TestRegIncBeta(t *testing.T) {
	tests := []struct {
		name    string
		a, b, x float64
		want    float64
		tol     float64
	}{
		{"below range", 2, 3, -0.5, 0, 0},
		{"above range", 2, 3, 1.5, 1, 0},
		{"uniform is identity", 1, 1, 0.3, 0.3, 1e-12},
		{"symmetric half", 2, 2, 0.5, 0.5, 1e-12},
		{"known a=2 b=3", 2, 3, 0.4, 0.5248, 1e-4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := regIncBeta(tc.a, tc.b, tc.x); !almostEqual(got, tc.want, tc.tol) {
				t.Errorf("regIncBeta(%f,%f,%f) = %f, want %f", tc.a, tc.b, tc.x, got, tc.want)
			}
		})
	}
}
