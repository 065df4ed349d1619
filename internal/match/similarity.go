package match

import "github.com/lingua-loop/lingualms/internal/textnorm"

// Tier buckets a fractional similarity score for display and pass/fail views.
type Tier string

const (
	TierHigh   Tier = "high"   // >= 0.8, pass-equivalent
	TierMedium Tier = "medium" // >= 0.6
	TierLow    Tier = "low"
)

// TierFor maps a similarity score to its band.
func TierFor(score float64) Tier {
	switch {
	case score >= 0.8:
		return TierHigh
	case score >= 0.6:
		return TierMedium
	default:
		return TierLow
	}
}

// Similarity returns the best edit-distance similarity in [0,1] between user
// and any defined alternative. An exact normalized match short-circuits to 1
// without computing distances. Empty user input scores 0.
func Similarity(user string, alts ...string) float64 {
	nu := textnorm.Normalize(user)
	if nu == "" {
		return 0
	}
	norms := make([]string, 0, len(alts))
	for _, alt := range alts {
		if alt == "" {
			continue
		}
		na := textnorm.Normalize(alt)
		if na == nu {
			return 1
		}
		if na != "" {
			norms = append(norms, na)
		}
	}
	best := 0.0
	for _, na := range norms {
		if s := similarity(nu, na); s > best {
			best = s
		}
	}
	return best
}

// similarity converts edit distance to 1 - d/max(len). Inputs are already
// normalized and non-empty.
func similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 0
	}
	s := 1 - float64(levenshtein(a, b))/float64(max)
	if s < 0 {
		return 0
	}
	return s
}

// levenshtein computes edit distance (insertion, deletion, substitution cost 1)
// with a single rolling row.
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	dp := make([]int, m+1)
	for j := 0; j <= m; j++ {
		dp[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := dp[0]
		dp[0] = i
		for j := 1; j <= m; j++ {
			tmp := dp[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			ins := dp[j] + 1
			del := dp[j-1] + 1
			sub := prev + cost
			dp[j] = min3(ins, del, sub)
			prev = tmp
		}
	}
	return dp[m]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
