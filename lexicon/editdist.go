package lexicon

import "github.com/ieee0824/g2pdict/phoneme"

// PhonemeEditDistance computes the Levenshtein edit distance between two
// pronunciations. Silent units are ignored.
func PhonemeEditDistance(a, b phoneme.Pronunciation) int {
	a, b = a.Audible(), b.Audible()
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}
