// Package workload describes the operation streams fed to a tree: a
// line-oriented script format for hand-written scenarios and seeded
// generators for bulk runs (monotonic, random, zigzag and sawtooth key
// orders).
//
// Script grammar, one operation per line:
//
//	# comment
//	insert 10 20 30
//	erase 20
//	find 10 20
//	min
//	max
//	export
//	verify
//	clear
package workload
