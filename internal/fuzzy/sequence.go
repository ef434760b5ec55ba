package fuzzy

import "sort"

// Block is a run of Length equal runes at PosFirst in the first sequence and
// PosSecond in the second.
type Block struct {
	PosFirst  int
	PosSecond int
	Length    int
}

// SequenceMatcher compares two rune sequences, in the manner of difflib:
// matching blocks found by recursive longest-common-substring search, or an
// optimal-string-alignment edit distance when useEditDistance is set.
type SequenceMatcher struct {
	first           []rune
	second          []rune
	useEditDistance bool

	positions    map[rune][]int
	blocks       []Block
	editDistance int
	ratio        float64
}

// NewSequenceMatcher creates a matcher over two strings compared rune by rune.
// No case folding happens here.
func NewSequenceMatcher(first, second string, useEditDistance bool) *SequenceMatcher {
	return newSequenceMatcher([]rune(first), []rune(second), useEditDistance)
}

func newSequenceMatcher(first, second []rune, useEditDistance bool) *SequenceMatcher {
	positions := make(map[rune][]int, len(second))
	for i, r := range second {
		positions[r] = append(positions[r], i)
	}
	return &SequenceMatcher{
		first:           first,
		second:          second,
		useEditDistance: useEditDistance,
		positions:       positions,
		editDistance:    -1,
		ratio:           -1,
	}
}

// LongestMatch finds the longest common block inside first[fs:fe] and
// second[ss:se]. The earliest block wins among equally long ones; a zero
// Length means nothing matched.
func (m *SequenceMatcher) LongestMatch(fs, fe, ss, se int) Block {
	best := Block{PosFirst: fs, PosSecond: ss}
	runLen := map[int]int{}
	for i := fs; i < fe; i++ {
		next := map[int]int{}
		for _, j := range m.positions[m.first[i]] {
			if j < ss {
				continue
			}
			if j >= se {
				break
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > best.Length {
				best = Block{PosFirst: i - k + 1, PosSecond: j - k + 1, Length: k}
			}
		}
		runLen = next
	}
	return best
}

// MatchingBlocks returns the matching blocks sorted by position in the first
// sequence, terminated by the sentinel {len(first), len(second), 0}.
func (m *SequenceMatcher) MatchingBlocks() []Block {
	if m.blocks != nil {
		return m.blocks
	}

	type span struct{ fs, fe, ss, se int }
	queue := []span{{0, len(m.first), 0, len(m.second)}}
	var blocks []Block
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		b := m.LongestMatch(s.fs, s.fe, s.ss, s.se)
		if b.Length == 0 {
			continue
		}
		if s.fs < b.PosFirst && s.ss < b.PosSecond {
			queue = append(queue, span{s.fs, b.PosFirst, s.ss, b.PosSecond})
		}
		if b.PosFirst+b.Length < s.fe && b.PosSecond+b.Length < s.se {
			queue = append(queue, span{b.PosFirst + b.Length, s.fe, b.PosSecond + b.Length, s.se})
		}
		blocks = append(blocks, b)
	}
	blocks = append(blocks, Block{PosFirst: len(m.first), PosSecond: len(m.second)})
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].PosFirst < blocks[j].PosFirst })

	m.blocks = blocks
	return blocks
}

// EditDistance returns the Damerau-Levenshtein distance (optimal string
// alignment variant) between the two sequences.
func (m *SequenceMatcher) EditDistance() int {
	if m.editDistance >= 0 {
		return m.editDistance
	}

	n1, n2 := len(m.first), len(m.second)
	dp := make([][]int, n1+1)
	for i := range dp {
		dp[i] = make([]int, n2+1)
		dp[i][0] = i
	}
	for j := 0; j <= n2; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= n1; i++ {
		for j := 1; j <= n2; j++ {
			cost := 1
			if m.first[i-1] == m.second[j-1] {
				cost = 0
			}
			dp[i][j] = min(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)
			if i > 1 && j > 1 && m.first[i-1] == m.second[j-2] && m.first[i-2] == m.second[j-1] {
				dp[i][j] = min(dp[i][j], dp[i-2][j-2]+cost)
			}
		}
	}

	m.editDistance = dp[n1][n2]
	return m.editDistance
}

// Ratio returns the similarity of the sequences in [0, 1]: twice the matched
// length over the total length, or one minus the normalized edit distance.
// Two empty sequences are identical.
func (m *SequenceMatcher) Ratio() float64 {
	if m.ratio >= 0 {
		return m.ratio
	}

	total := len(m.first) + len(m.second)
	if total == 0 {
		m.ratio = 1
		return m.ratio
	}

	if m.useEditDistance {
		m.ratio = max(0, 1-2*float64(m.EditDistance())/float64(total))
		return m.ratio
	}

	matched := 0
	for _, b := range m.MatchingBlocks() {
		matched += b.Length
	}
	m.ratio = 2 * float64(matched) / float64(total)
	return m.ratio
}
