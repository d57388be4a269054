package detector

// Byte-level Aho-Corasick automaton over the lowercased keyword list.
// Each node carries a dense 256-way transition table so a scan is one
// array lookup per input byte; keyword lists are small enough for that

type acNode struct {
	// trans[b] = next state or -1 if absent
	trans  [256]int32
	fail   int32
	output []int // keyword indexes ending at this node
}

type acAutomaton struct {
	nodes []acNode
}

func newNode() acNode {
	var n acNode
	for i := range n.trans {
		n.trans[i] = -1
	}
	return n
}

func newAutomaton() *acAutomaton {
	return &acAutomaton{nodes: []acNode{newNode()}}
}

// AddPattern inserts a keyword under id. Empty patterns are ignored
func (a *acAutomaton) AddPattern(pat []byte, id int) {
	if len(pat) == 0 {
		return
	}
	var state int32
	for _, b := range pat {
		nxt := a.nodes[state].trans[b]
		if nxt == -1 {
			nxt = int32(len(a.nodes))
			a.nodes[state].trans[b] = nxt
			a.nodes = append(a.nodes, newNode())
		}
		state = nxt
	}
	a.nodes[state].output = append(a.nodes[state].output, id)
}

// Build computes failure links breadth first and folds suffix outputs
// into each node. The automaton is read-only afterwards
func (a *acAutomaton) Build() {
	q := make([]int32, 0, len(a.nodes))
	for b := range 256 {
		if s := a.nodes[0].trans[b]; s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}

	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := range 256 {
			s := a.nodes[r].trans[b]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].trans[b] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].trans[b]; nxt != -1 && nxt != s {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}
			a.nodes[s].output = append(a.nodes[s].output, a.nodes[a.nodes[s].fail].output...)
		}
	}
}

// FindAll scans text and calls cb(endIndex, id) for each match.
// If cb returns false, scanning stops early
func (a *acAutomaton) FindAll(text []byte, cb func(end int, id int) bool) {
	var state int32
	for i, b := range text {
		for state != 0 && a.nodes[state].trans[b] == -1 {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].trans[b]; nxt != -1 {
			state = nxt
		}
		for _, id := range a.nodes[state].output {
			if !cb(i+1, id) {
				return
			}
		}
	}
}

// Present marks which of n ids occur at least once in text.
// Scanning stops as soon as every id has been seen
func (a *acAutomaton) Present(text string, n int) []bool {
	seen := make([]bool, n)
	if n == 0 {
		return seen
	}
	left := n
	a.FindAll([]byte(text), func(_ int, id int) bool {
		if id < n && !seen[id] {
			seen[id] = true
			left--
		}
		return left > 0
	})
	return seen
}
