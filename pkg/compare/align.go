package compare

// Align runs the LCS paragraph aligner (spec §4.5) over orig and mod,
// comparing them with Similarity at threshold. It returns the alignment
// sequence in source order.
//
// The backtrack's tie-break (">=", not ">") deliberately prefers an insert
// over a delete when both neighbouring scores are equal; this is the policy spec §4.5
// documents as deliberate, not an implementation accident.
func Align(orig, mod []string, threshold float64) []AlignmentRecord {
	m, n := len(orig), len(mod)

	// same[i][j] caches whether orig[i-1] and mod[j-1] meet the threshold,
	// since the backtrack re-queries cells the fill phase already computed.
	same := make([][]bool, m+1)
	for i := range same {
		same[i] = make([]bool, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			same[i][j] = Similarity(orig[i-1], mod[j-1]) >= threshold
		}
	}

	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if same[i][j] {
				lcs[i][j] = lcs[i-1][j-1] + 1
			} else {
				lcs[i][j] = max(lcs[i-1][j], lcs[i][j-1])
			}
		}
	}

	var out []AlignmentRecord
	i, j := m, n
	for i > 0 || j > 0 {
		if i > 0 && j > 0 && same[i][j] {
			out = append(out, AlignmentRecord{OrigIdx: i - 1, ModIdx: j - 1, Kind: AlignMatch})
			i--
			j--
			continue
		}
		if j > 0 && (i == 0 || lcs[i][j-1] >= lcs[i-1][j]) {
			out = append(out, AlignmentRecord{OrigIdx: -1, ModIdx: j - 1, Kind: AlignInsert})
			j--
		} else {
			out = append(out, AlignmentRecord{OrigIdx: i - 1, ModIdx: -1, Kind: AlignDelete})
			i--
		}
	}

	reverse(out)
	return out
}

func reverse(a []AlignmentRecord) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}
