// Package merkle implements a binary Merkle tree over SHA3-256 digests with
// positional authentication paths.
package merkle

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the fixed output size of every node hash.
const DigestSize = 32

// Tree is a binary Merkle tree built bottom-up from leaf data. The number of
// leaves need not be a power of two: the final node of an odd level is
// promoted unchanged, matching the teacher's convention.
type Tree struct {
	root   [DigestSize]byte
	levels [][][DigestSize]byte // levels[0] = leaf hashes, levels[len-1] = {root}
}

// PathNode is one step of an authentication path: the sibling hash and
// whether that sibling sits to the right of the node being authenticated.
type PathNode struct {
	Sibling [DigestSize]byte
	IsRight bool
}

func hashLeaf(data []byte) [DigestSize]byte {
	return sha3.Sum256(data)
}

func hashNode(left, right [DigestSize]byte) [DigestSize]byte {
	buf := make([]byte, 0, 2*DigestSize)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return sha3.Sum256(buf)
}

// New builds a Merkle tree over leaves (raw, unhashed leaf data).
func New(leaves [][]byte) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("merkle: cannot build tree over zero leaves")
	}

	level := make([][DigestSize]byte, len(leaves))
	for i, l := range leaves {
		level[i] = hashLeaf(l)
	}

	levels := [][][DigestSize]byte{level}
	for len(level) > 1 {
		next := make([][DigestSize]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashNode(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{root: level[0], levels: levels}, nil
}

// Root returns the tree's root digest.
func (t *Tree) Root() [DigestSize]byte { return t.root }

// NumLeaves returns the number of leaves committed to.
func (t *Tree) NumLeaves() int { return len(t.levels[0]) }

// Path returns the authentication path for the leaf at index.
func (t *Tree) Path(index int) ([]PathNode, error) {
	if index < 0 || index >= len(t.levels[0]) {
		return nil, fmt.Errorf("merkle: index %d out of range [0,%d)", index, len(t.levels[0]))
	}

	path := make([]PathNode, 0, len(t.levels)-1)
	idx := index
	for level := 0; level < len(t.levels)-1; level++ {
		nodes := t.levels[level]
		isRightChild := idx%2 == 1
		siblingIdx := idx - 1
		if !isRightChild {
			siblingIdx = idx + 1
		}
		if siblingIdx < 0 || siblingIdx >= len(nodes) {
			// Odd level: lone node was promoted, no real sibling to authenticate.
			idx /= 2
			continue
		}
		path = append(path, PathNode{Sibling: nodes[siblingIdx], IsRight: !isRightChild})
		idx /= 2
	}
	return path, nil
}

// Verify checks that leaf, opened with path at index, authenticates against root.
func Verify(root [DigestSize]byte, leaf []byte, index int, path []PathNode) bool {
	current := hashLeaf(leaf)
	for _, node := range path {
		if node.IsRight {
			current = hashNode(current, node.Sibling)
		} else {
			current = hashNode(node.Sibling, current)
		}
	}
	_ = index // index is implicit in the path's left/right flags
	return current == root
}

// RootOf is a convenience wrapper computing just the root of a leaf set.
func RootOf(leaves [][]byte) ([DigestSize]byte, error) {
	t, err := New(leaves)
	if err != nil {
		return [DigestSize]byte{}, err
	}
	return t.Root(), nil
}
