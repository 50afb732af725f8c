// Package fstat provides directory statistics collection and analysis.
//
// It walks a directory tree (or a single file) in one sequential pass,
// applies retention filters to every observed entry, and aggregates
// counts, sizes, a size-distribution histogram and per-extension
// statistics without buffering more state than the caller asks for.
package fstat
