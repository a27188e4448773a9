package lzw

import (
	"errors"
	"fmt"
	"math/bits"
)

const alphabetSize = 256

// Token stands in for a substring recorded in the dictionary. Tokens 0-255
// are pre-bound to the single-byte strings; higher tokens are assigned in
// strictly increasing order as new substrings are first seen.
type Token = uint32

var ErrInvalidToken = errors.New("invalid token")

// Encode transforms content into a token sequence using greedy
// longest-match dictionary substitution. The dictionary is scoped to this
// one call and is append-only for its duration.
func Encode(content []byte) []Token {
	dictionary := make(map[string]Token, alphabetSize)
	for i := 0; i < alphabetSize; i++ {
		dictionary[string([]byte{byte(i)})] = Token(i)
	}
	nextToken := Token(alphabetSize)
	var tokens []Token
	var w []byte
	for _, c := range content {
		wc := append(w, c)
		if _, ok := dictionary[string(wc)]; ok {
			w = wc
		} else {
			tokens = append(tokens, dictionary[string(w)])
			dictionary[string(wc)] = nextToken
			nextToken++
			w = []byte{c}
		}
	}
	if len(w) > 0 {
		tokens = append(tokens, dictionary[string(w)])
	}
	return tokens
}

// Decode rebuilds the dictionary from the token sequence alone and recovers
// the original content. A token equal to the next unassigned id is the
// self-referential case where the encoder used an entry it had only just
// defined; it resolves to the previous string plus its own first byte. Any
// other unbound token fails with ErrInvalidToken.
func Decode(tokens []Token) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	entries := make([][]byte, alphabetSize, alphabetSize+len(tokens))
	for i := range entries {
		entries[i] = []byte{byte(i)}
	}
	if int(tokens[0]) >= alphabetSize {
		return nil, fmt.Errorf("lzw: leading token %d has no binding: %w", tokens[0], ErrInvalidToken)
	}
	w := entries[tokens[0]]
	content := append([]byte(nil), w...)
	for _, token := range tokens[1:] {
		var entry []byte
		switch {
		case int(token) < len(entries):
			entry = entries[token]
		case int(token) == len(entries):
			entry = append(append([]byte(nil), w...), w[0])
		default:
			return nil, fmt.Errorf("lzw: token %d past next unassigned id %d: %w", token, len(entries), ErrInvalidToken)
		}
		content = append(content, entry...)
		entries = append(entries, append(append([]byte(nil), w...), entry[0]))
		w = entry
	}
	return content, nil
}

// tokenWidth is the number of bits Pack spends per token, wide enough for
// the largest token in the sequence and never below 9 so that a freshly
// grown dictionary entry still fits.
func tokenWidth(tokens []Token) byte {
	var max Token
	for _, t := range tokens {
		if t > max {
			max = t
		}
	}
	width := byte(bits.Len32(max))
	if width < 9 {
		width = 9
	}
	return width
}
