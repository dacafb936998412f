// Package loader parses whitespace-delimited embedding text files (word2vec
// text, fastText .vec, Wikipedia2Vec) into raw tokens. The first column is
// the token name and the remaining columns are vector components; input
// order becomes the token index. Files ending in .gz or .bz2 are
// decompressed on the fly.
package loader
