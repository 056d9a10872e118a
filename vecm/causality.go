package vecm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CausalityResult represents the result of a Wald causality test.
type CausalityResult struct {
	Statistic float64
	PValue    float64
	DF        int
	Caused    []int
	Causing   []int
}

// TestGrangerCausality tests the null hypothesis that the variables with
// indices causing do not Granger-cause the variables with indices caused.
// The Wald statistic is built on the level-VAR coefficients linking causing
// to caused at lags 1..KAr and is chi-square with
// KAr * len(caused) * len(causing) degrees of freedom under the null.
func (res *Results) TestGrangerCausality(caused, causing []int) (*CausalityResult, error) {
	if err := res.checkFitted("TestGrangerCausality"); err != nil {
		return nil, err
	}
	if err := res.validateIndexSets(caused, causing); err != nil {
		return nil, err
	}

	a, err := res.VARRep()
	if err != nil {
		return nil, err
	}
	cov, err := res.covVARRep()
	if err != nil {
		return nil, err
	}
	k := res.Neqs
	p := res.KAr

	// vec indices of the restricted coefficients A_j[e, c].
	var idx []int
	var w []float64
	for j := 0; j < p; j++ {
		for _, c := range causing {
			for _, e := range caused {
				idx = append(idx, (j*k+c)*k+e)
				w = append(w, a[j].At(e, c))
			}
		}
	}

	sub := mat.NewDense(len(idx), len(idx), nil)
	for i, ri := range idx {
		for j, cj := range idx {
			sub.Set(i, j, cov.At(ri, cj))
		}
	}
	var subInv mat.Dense
	if err := subInv.Inverse(sub); err != nil {
		return nil, &NumericalInstabilityError{Msg: "restricted coefficient covariance is singular"}
	}
	stat := quadForm(w, &subInv)

	df := p * len(caused) * len(causing)
	dist := distuv.ChiSquared{K: float64(df)}
	return &CausalityResult{
		Statistic: stat,
		PValue:    dist.Survival(stat),
		DF:        df,
		Caused:    caused,
		Causing:   causing,
	}, nil
}

// TestInstCausality tests the null hypothesis of no instantaneous causality
// between the caused and causing variables, i.e. that the corresponding
// off-diagonal entries of the innovation covariance are zero. The statistic
// is symmetric in its two arguments.
func (res *Results) TestInstCausality(caused, causing []int) (*CausalityResult, error) {
	if err := res.checkFitted("TestInstCausality"); err != nil {
		return nil, err
	}
	if err := res.validateIndexSets(caused, causing); err != nil {
		return nil, err
	}
	k := res.Neqs

	// Selection matrix picking the tested entries out of vech(Sigma_u).
	nvech := k * (k + 1) / 2
	npairs := len(caused) * len(causing)
	c := mat.NewDense(npairs, nvech, nil)
	row := 0
	for _, a := range caused {
		for _, b := range causing {
			i, j := a, b
			if i < j {
				i, j = j, i
			}
			c.Set(row, vechIndex(i, j, k), 1)
			row++
		}
	}

	dplus := duplicationPinv(k)
	var kron mat.Dense
	kron.Kronecker(res.SigmaU, res.SigmaU)

	var cd, t1, t2, sigma mat.Dense
	cd.Mul(c, dplus)
	t1.Mul(&cd, &kron)
	t2.Mul(&t1, cd.T())
	sigma.Scale(2, &t2)

	var sigmaInv mat.Dense
	if err := sigmaInv.Inverse(&sigma); err != nil {
		return nil, &NumericalInstabilityError{Msg: "covariance of the tested entries is singular"}
	}

	// w = C vech(Sigma_u)
	vh := vech(res.SigmaU)
	w := make([]float64, npairs)
	for i := 0; i < npairs; i++ {
		for j := 0; j < nvech; j++ {
			w[i] += c.At(i, j) * vh[j]
		}
	}
	stat := float64(res.Nobs) * quadForm(w, &sigmaInv)

	df := npairs
	dist := distuv.ChiSquared{K: float64(df)}
	return &CausalityResult{
		Statistic: stat,
		PValue:    dist.Survival(stat),
		DF:        df,
		Caused:    caused,
		Causing:   causing,
	}, nil
}

// validateIndexSets rejects empty, out-of-range or overlapping variable
// index sets.
func (res *Results) validateIndexSets(caused, causing []int) error {
	if len(caused) == 0 || len(causing) == 0 {
		return &InvalidArgumentError{Msg: "caused and causing must be non-empty"}
	}
	seen := make(map[int]bool)
	for _, set := range [][]int{caused, causing} {
		for _, i := range set {
			if i < 0 || i >= res.Neqs {
				return &InvalidArgumentError{Msg: fmt.Sprintf("variable index %d outside [0, %d)", i, res.Neqs)}
			}
		}
	}
	for _, i := range caused {
		seen[i] = true
	}
	for _, i := range causing {
		if seen[i] {
			return &InvalidArgumentError{Msg: fmt.Sprintf("variable %d appears in both caused and causing", i)}
		}
	}
	return nil
}

// vechIndex returns the position of entry (i, j), i >= j, in the
// half-vectorization of a k x k symmetric matrix.
func vechIndex(i, j, k int) int {
	return j*k - j*(j+1)/2 + i
}

// vech half-vectorizes a symmetric matrix, stacking the lower triangle
// column by column.
func vech(s *mat.SymDense) []float64 {
	k := s.SymmetricDim()
	out := make([]float64, k*(k+1)/2)
	for j := 0; j < k; j++ {
		for i := j; i < k; i++ {
			out[vechIndex(i, j, k)] = s.At(i, j)
		}
	}
	return out
}

// duplicationPinv returns the Moore-Penrose inverse of the duplication
// matrix D_k, which satisfies Dplus vec(S) = vech(S) for symmetric S. D'D is
// diagonal, so the pseudo-inverse has a closed form.
func duplicationPinv(k int) *mat.Dense {
	nvech := k * (k + 1) / 2
	d := mat.NewDense(k*k, nvech, nil)
	for j := 0; j < k; j++ {
		for i := j; i < k; i++ {
			col := vechIndex(i, j, k)
			d.Set(j*k+i, col, 1)
			d.Set(i*k+j, col, 1)
		}
	}
	out := mat.NewDense(nvech, k*k, nil)
	for col := 0; col < nvech; col++ {
		// (D'D) is diagonal: 1 for diagonal entries of S, 2 off-diagonal.
		norm := 0.0
		for row := 0; row < k*k; row++ {
			norm += d.At(row, col) * d.At(row, col)
		}
		for row := 0; row < k*k; row++ {
			out.Set(col, row, d.At(row, col)/norm)
		}
	}
	return out
}

// quadForm computes w' M w.
func quadForm(w []float64, m *mat.Dense) float64 {
	out := 0.0
	for i := range w {
		for j := range w {
			out += w[i] * m.At(i, j) * w[j]
		}
	}
	return out
}
