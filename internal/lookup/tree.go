package lookup

// tree is a BK-tree over folded keys. Children are indexed by their edit
// distance to the parent key.
type tree struct {
	root *node
	size int
}

type node struct {
	key      string
	children map[int]*node
}

// insert adds key and reports whether it was new.
func (t *tree) insert(key string) bool {
	if key == "" {
		return false
	}
	if t.root == nil {
		t.root = &node{key: key, children: make(map[int]*node)}
		t.size++
		return true
	}

	current := t.root
	for {
		d := Distance(key, current.key)
		if d == 0 {
			return false
		}
		child, ok := current.children[d]
		if !ok {
			current.children[d] = &node{key: key, children: make(map[int]*node)}
			t.size++
			return true
		}
		current = child
	}
}

// within calls visit for every key at most maxDistance from query.
func (t *tree) within(query string, maxDistance int, visit func(key string, d int)) {
	if t.root == nil {
		return
	}
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d := Distance(query, n.key)
		if d <= maxDistance {
			visit(n.key, d)
		}
		// Triangle inequality bounds which subtrees can hold a match.
		for cd, child := range n.children {
			if cd >= d-maxDistance && cd <= d+maxDistance {
				stack = append(stack, child)
			}
		}
	}
}

// Distance is the Levenshtein distance between a and b, counted in
// code points.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}
