// Package internal holds helpers shared between the LS-8 packages.
package internal

import (
	"iter"
)

// IterSeq2Concat chains key/value iterators, in order. Later sequences
// may repeat keys of earlier ones; collecting with maps.Collect lets the
// last one win.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
