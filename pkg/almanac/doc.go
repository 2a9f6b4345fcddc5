// Package almanac reads the textual input of a remapping pipeline:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// The first line lists the initial values. Every "<source>-to-<dest> map:"
// block is one stage, applied in file order; each of its lines is a rule
// written as "dest source length". Errors name the offending line.
package almanac
