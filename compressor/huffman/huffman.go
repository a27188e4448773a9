package huffman

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Token is the symbol type the entropy coder operates on, matching the
// token ids emitted by the dictionary coder.
type Token = uint32

// BitString holds a binary code as '0' and '1' digits, one byte per bit.
type BitString string

var (
	ErrEmptyAlphabet   = errors.New("empty alphabet")
	ErrUnknownToken    = errors.New("token missing from code table")
	ErrTruncatedStream = errors.New("bitstream ends mid-traversal")
)

// Tree is either a leaf owning one token or an internal node owning its two
// children. Shape is immutable once Build returns.
type Tree interface {
	getFrequency() int
	getId() int
}

type huffmanLeaf struct {
	freq, id int
	token    Token
}

type huffmanNode struct {
	freq, id    int
	left, right Tree
}

func (leaf huffmanLeaf) getFrequency() int {
	return leaf.freq
}

func (leaf huffmanLeaf) getId() int {
	return leaf.id
}

func (node huffmanNode) getFrequency() int {
	return node.freq
}

func (node huffmanNode) getId() int {
	return node.id
}

// Count tallies token occurrences over one finite sequence.
func Count(tokens []Token) map[Token]int {
	tokenFreq := make(map[Token]int)
	for _, token := range tokens {
		tokenFreq[token]++
	}
	return tokenFreq
}

// Build merges the two lowest-weight subtrees until one remains. Ties are
// broken by a monotonic insertion id, with leaves seeded in sorted token
// order, so the same frequency table always yields the same tree. The
// lower-weight pop of each pair becomes the left child.
func Build(tokenFreq map[Token]int) (Tree, error) {
	if len(tokenFreq) == 0 {
		return nil, fmt.Errorf("huffman: cannot build a tree: %w", ErrEmptyAlphabet)
	}
	keys := make([]Token, 0, len(tokenFreq))
	for token := range tokenFreq {
		keys = append(keys, token)
	}
	slices.Sort(keys)
	treehub := make(huffmanHeap, 0, len(keys))
	monoId := 0
	for _, key := range keys {
		treehub = append(treehub, huffmanLeaf{
			freq:  tokenFreq[key],
			token: key,
			id:    monoId,
		})
		monoId++
	}
	heap.Init(&treehub)
	for treehub.Len() > 1 {
		x := heap.Pop(&treehub).(Tree)
		y := heap.Pop(&treehub).(Tree)
		heap.Push(&treehub, huffmanNode{
			freq:  x.getFrequency() + y.getFrequency(),
			left:  x,
			right: y,
			id:    monoId,
		})
		monoId++
	}
	return heap.Pop(&treehub).(Tree), nil
}

// Codes walks the tree and records the root-to-leaf path of each token,
// '0' for a left descent and '1' for a right one. A single-leaf tree gets
// the one-bit code "0" so that a one-symbol alphabet still produces a
// decodable stream.
func Codes(tree Tree) map[Token]BitString {
	codes := make(map[Token]BitString)
	if leaf, ok := tree.(huffmanLeaf); ok {
		codes[leaf.token] = "0"
		return codes
	}
	assignCodes(tree, codes, []byte{})
	return codes
}

func assignCodes(tree Tree, codes map[Token]BitString, currentPrefix []byte) {
	switch i := tree.(type) {
	case huffmanLeaf:
		codes[i.token] = BitString(currentPrefix)
	case huffmanNode:
		assignCodes(i.left, codes, append(currentPrefix, '0'))
		assignCodes(i.right, codes, append(currentPrefix, '1'))
	}
}

// Encode concatenates the code of every token in order.
func Encode(tokens []Token, codes map[Token]BitString) (BitString, error) {
	var output strings.Builder
	for _, token := range tokens {
		code, ok := codes[token]
		if !ok {
			return "", fmt.Errorf("huffman: token %d: %w", token, ErrUnknownToken)
		}
		output.WriteString(string(code))
	}
	return BitString(output.String()), nil
}

// Decode walks the tree bit by bit, emitting a token at every leaf and
// restarting from the root, until the bitstream is exhausted. A stream that
// runs out between root and leaf fails with ErrTruncatedStream. For a
// single-leaf tree every bit stands for the one token.
func Decode(bits BitString, tree Tree) ([]Token, error) {
	var tokens []Token
	if leaf, ok := tree.(huffmanLeaf); ok {
		for range bits {
			tokens = append(tokens, leaf.token)
		}
		return tokens, nil
	}
	current := tree
	depth := 0
	for i := 0; i < len(bits); i++ {
		branch := current.(huffmanNode)
		if bits[i] == '1' {
			current = branch.right
		} else {
			current = branch.left
		}
		depth++
		if leaf, ok := current.(huffmanLeaf); ok {
			tokens = append(tokens, leaf.token)
			current, depth = tree, 0
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("huffman: %d leftover bits: %w", depth, ErrTruncatedStream)
	}
	return tokens, nil
}

// Frequencies recovers the leaf frequency table of a built tree. Together
// with Build's determinism this is what lets a decoder reconstruct the
// exact tree from a transmitted frequency table.
func Frequencies(tree Tree) map[Token]int {
	tokenFreq := make(map[Token]int)
	collectFrequencies(tree, tokenFreq)
	return tokenFreq
}

func collectFrequencies(tree Tree, tokenFreq map[Token]int) {
	switch i := tree.(type) {
	case huffmanLeaf:
		tokenFreq[i.token] = i.freq
	case huffmanNode:
		collectFrequencies(i.left, tokenFreq)
		collectFrequencies(i.right, tokenFreq)
	}
}
