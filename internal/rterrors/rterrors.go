// Package rterrors implements the three-way error taxonomy from spec.md
// §7: programmer errors (broken invariants) abort the process,
// invalid-argument errors are a typed value callers are expected to
// propagate, and legality rejections (the bulk of "failures" in the
// inliner and CSE passes) are not errors at all — they are enumerated
// outcomes with counters, defined next to the passes that produce them.
package rterrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Abort reports a broken internal invariant and terminates the process.
// Examples from spec.md §7: retrieving the payload of a Top/Bottom
// scaffolded domain, a Patricia-tree node with an unrecognized variant,
// a WTO computed over a graph with an unreachable entry node.
func Abort(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// Wrap attaches a stack trace to err using github.com/pkg/errors, for
// invalid-argument errors that callers are expected to propagate rather
// than recover from locally.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf is the formatted form of Wrap.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}
