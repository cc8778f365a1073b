// Package keyword stores the caller-configured keyword strings as a byte
// trie and answers longest-match queries over input text.
package keyword

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

type node struct {
	next     map[byte]*node
	terminal bool
}

func newNode() *node {
	return &node{next: make(map[byte]*node)}
}

// addPath прокладывает путь по байтам слова, помечая последний узел терминальным.
func (n *node) addPath(word string) {
	cur := n
	for i := 0; i < len(word); i++ {
		b := word[i]
		child, ok := cur.next[b]
		if !ok {
			child = newNode()
			cur.next[b] = child
		}
		cur = child
	}
	cur.terminal = true
}

// Set is an immutable keyword set. It is safe for concurrent readers after
// construction.
type Set struct {
	root  *node
	words []string
}

// New builds a Set from the given keywords. Empty keywords are rejected;
// duplicates collapse silently. The trie makes configured order irrelevant
// for matching: two keywords matching the same span with the same length are
// the same string.
func New(words []string) (*Set, error) {
	root := newNode()
	kept := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("keyword %d is empty", i)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
		root.addPath(w)
	}
	return &Set{root: root, words: kept}, nil
}

// Words returns the de-duplicated keywords in configured order.
// Callers must not modify the returned slice.
func (s *Set) Words() []string {
	return s.words
}

// Len returns the number of distinct keywords.
func (s *Set) Len() int {
	return len(s.words)
}

// Match walks the trie over text starting at off.
//
//   - end: one past the longest accepting match (valid only when ok)
//   - stop: the offset where the walk halted; equal to off when the first
//     byte has no transition at all
//   - ok: whether any accepting state was reached
//
// A walk that consumed bytes (stop > off) without reaching an accepting
// state is a malformed region; the caller reports at stop.
func (s *Set) Match(text []byte, off int) (end, stop int, ok bool) {
	cur := s.root
	pos := off
	end = off
	for pos < len(text) {
		child, has := cur.next[text[pos]]
		if !has {
			break
		}
		pos++
		cur = child
		if cur.terminal {
			end = pos
			ok = true
		}
	}
	return end, pos, ok
}

// MatchesAt reports whether a full keyword begins exactly at off.
func (s *Set) MatchesAt(text []byte, off int) bool {
	_, _, ok := s.Match(text, off)
	return ok
}

// Hash returns a stable digest of the keyword set, used for cache keying.
func (s *Set) Hash() [32]byte {
	h := sha256.New()
	var n [4]byte
	for _, w := range s.words {
		binary.LittleEndian.PutUint32(n[:], uint32(len(w)))
		h.Write(n[:])
		h.Write([]byte(w))
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
