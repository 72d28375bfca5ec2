// Package unorm canonicalizes precomposed and decomposed Unicode sequences.
//
// AppendNFC composes UTF-8 text to Form C with a sorted composition table
// and the algorithmic Hangul rules. Decomposition to Form D sits behind the
// Decomposer interface; HFSDecomposer is the bundled implementation.
// Compatibility decompositions are out of scope.
package unorm
