// Package inliner implements the method inliner (spec.md §4.6,
// component C7): candidate-map construction, a bottom-up driver with a
// call-stack recursion guard, a cost-model should-inline predicate, and
// the splicing mechanics that embed a callee's body into its caller.
package inliner

// Reason enumerates why a callsite was refused, mirroring
// libredex/Inliner.cpp's categorical outcomes (spec.md §4.6/§7:
// "not errors at all but enumerated categorical outcomes with
// per-category counters").
type Reason int

const (
	// Ok means the callsite passed every legality check.
	Ok Reason = iota
	CrossStoreReference
	BlacklistedCallee
	BlacklistedCaller
	ExternalCatch
	CreateVMethod
	NonrelocatableInvokeSuper
	UnknownVirtual
	UnknownField
	AndroidVersionCheck
	ThrowsInline
	MultipleReturns
	TooBig
	ApiMismatch
)

func (r Reason) String() string {
	switch r {
	case Ok:
		return "ok"
	case CrossStoreReference:
		return "cross_store"
	case BlacklistedCallee:
		return "blacklisted_callee"
	case BlacklistedCaller:
		return "blacklisted_caller"
	case ExternalCatch:
		return "external_catch"
	case CreateVMethod:
		return "create_vmethod"
	case NonrelocatableInvokeSuper:
		return "nonrelocatable_invoke_super"
	case UnknownVirtual:
		return "unknown_virtual"
	case UnknownField:
		return "unknown_field"
	case AndroidVersionCheck:
		return "android_version_check"
	case ThrowsInline:
		return "throws_inline"
	case MultipleReturns:
		return "multi_ret"
	case TooBig:
		return "caller_too_large"
	case ApiMismatch:
		return "api_mismatch"
	default:
		return "unknown_reason"
	}
}
