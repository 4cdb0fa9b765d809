// Package service drives a red-black tree with operation streams:
// hand-written scripts and generated workloads.
//
// It owns the ambient concerns the tree package stays out of, namely
// logging, periodic invariant verification and run reporting, and is
// decoupled from the CLI that invokes it.
package service
