// Package stats provides the hypothesis-testing primitives used by the
// differential analyzer: mean, sample variance, Welch's two-sample
// t-test and Cohen's d. All functions are pure and operate on plain
// float64 slices so they can be tested in isolation.
package stats

import "math"

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Variance returns the unbiased sample variance (n-1 denominator),
// or 0 for fewer than two observations.
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return sumSq / float64(len(xs)-1)
}

// WelchTTest runs Welch's unequal-variance two-sample t-test.
// It returns the t-statistic, the two-sided p-value, and the
// Welch-Satterthwaite degrees of freedom.
//
// Degenerate inputs never panic: with fewer than two observations per
// sample, or zero variance in both samples, the test reports t=0, p=1
// when the means agree and an infinite t with p=0 when they differ.
func WelchTTest(a, b []float64) (t, p, df float64) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0, 1, 0
	}
	mean1, mean2 := Mean(a), Mean(b)
	var1, var2 := Variance(a), Variance(b)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		if mean1 == mean2 {
			return 0, 1, n1 + n2 - 2
		}
		t = math.Inf(1)
		if mean1 < mean2 {
			t = math.Inf(-1)
		}
		return t, 0, n1 + n2 - 2
	}

	t = (mean1 - mean2) / se
	df = math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))
	p = 2 * (1 - tCDF(math.Abs(t), df))
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return t, p, df
}

// CohenD returns Cohen's d using the pooled standard deviation with
// the unequal-N convention. A zero pooled deviation yields 0 for equal
// means and an appropriately signed infinity otherwise.
func CohenD(a, b []float64) float64 {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0
	}
	mean1, mean2 := Mean(a), Mean(b)
	var1, var2 := Variance(a), Variance(b)
	pooled := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	if pooled == 0 {
		if mean1 == mean2 {
			return 0
		}
		if mean1 > mean2 {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	return (mean1 - mean2) / pooled
}

// tCDF returns P(T <= t) for Student's t-distribution with df degrees
// of freedom, via the regularized incomplete beta function:
//
//	P(T <= t) = 1 - I_x(df/2, 1/2)/2  with  x = df/(df+t^2), t >= 0
func tCDF(t, df float64) float64 {
	if df <= 0 {
		return 0.5
	}
	if math.IsInf(t, 1) {
		return 1
	}
	if math.IsInf(t, -1) {
		return 0
	}
	x := df / (df + t*t)
	tail := 0.5 * regIncBeta(df/2, 0.5, x)
	if t >= 0 {
		return 1 - tail
	}
	return tail
}

// regIncBeta computes the regularized incomplete beta function I_x(a,b)
// using the continued fraction expansion (Lentz's method).
func regIncBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	// Symmetry transformation keeps the continued fraction convergent.
	if x > (a+1)/(a+b+2) {
		return 1 - regIncBeta(b, a, 1-x)
	}
	lbeta := lgamma(a) + lgamma(b) - lgamma(a+b)
	front := math.Exp(a*math.Log(x)+b*math.Log(1-x)-lbeta) / a

	const (
		maxIter = 200
		eps     = 1e-14
		tiny    = 1e-30
	)
	f, c, d := 1.0, 1.0, 0.0
	for i := 0; i <= maxIter; i++ {
		m := i / 2
		var numerator float64
		switch {
		case i == 0:
			numerator = 1
		case i%2 == 0:
			numerator = (float64(m) * (b - float64(m)) * x) /
				((a + 2*float64(m) - 1) * (a + 2*float64(m)))
		default:
			numerator = -((a + float64(m)) * (a + b + float64(m)) * x) /
				((a + 2*float64(m)) * (a + 2*float64(m) + 1))
		}

		d = 1 + numerator*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		d = 1 / d
		c = 1 + numerator/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		cd := c * d
		f *= cd
		if math.Abs(1-cd) < eps {
			break
		}
	}
	return front * (f - 1)
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
