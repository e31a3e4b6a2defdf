// Package ir defines the in-memory tree representation shared by all
// sprout packages: a tagged union of scalar, sequence and mapping nodes,
// together with constructors and conversions to and from plain Go values.
package ir
