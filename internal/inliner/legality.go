package inliner

import "github.com/facebook/redex-core/internal/ir"

// buildVersionCheckField is the well-known platform field whose read
// the original flags as unsafe to inline around (spec.md §4.6's
// AndroidVersionCheck: "known soft-error/hard-error interaction on
// certain platform versions").
var buildVersionCheckField = ir.FieldRef{Class: "Landroid/os/Build$VERSION;", Name: "SDK_INT", FType: "I"}

// Legality runs spec.md §4.6's is_inlinable checks against one
// caller/callee pair, short-circuiting on the first violation.
type Legality struct {
	Scope     *ir.Scope
	Resolver  ir.Resolver
	Config    Config
	Mode      Mode
	blackList map[ir.Type]bool
	callerBL  map[ir.Type]bool

	// ToPromote collects, across every legality check this run, the
	// callee methods CreateVMethod found that must be promoted to
	// static before inlining can proceed (spec.md §4.6's "Record
	// methods that must be promoted to static").
	ToPromote map[ir.MethodRef]*ir.Method
}

// NewLegality seeds the denylists from Config and returns a ready
// checker with an empty promotion set.
func NewLegality(scope *ir.Scope, resolver ir.Resolver, cfg Config, mode Mode) *Legality {
	return &Legality{
		Scope:     scope,
		Resolver:  resolver,
		Config:    cfg,
		Mode:      mode,
		blackList: typeSet(cfg.BlackList),
		callerBL:  typeSet(cfg.CallerBlackList),
		ToPromote: make(map[ir.MethodRef]*ir.Method),
	}
}

// Check runs every legality rule for caller inlining callee at
// callsite, returning the first violated Reason, or Ok.
func (l *Legality) Check(caller, callee *ir.Method, callsite *ir.Instruction) Reason {
	if l.blackList[callee.Class] || callee.Access.IsEnum() {
		return BlacklistedCallee
	}
	if l.callerBL[caller.Class] {
		return BlacklistedCaller
	}
	if l.Mode == Intra {
		if callerClass, ok := l.Scope.Lookup(caller.Class); ok {
			if calleeClass, ok := l.Scope.Lookup(callee.Class); ok && callerClass.Container != calleeClass.Container {
				return CrossStoreReference
			}
		}
	}
	if callee.MinAPILevel > caller.MinAPILevel {
		return ApiMismatch
	}

	body := callee.Code()
	numReturns := 0
	hasThrow := false
	for _, insn := range body.Instructions() {
		switch {
		case insn.Op.IsReturn():
			numReturns++
		case insn.Op == ir.OpThrow:
			hasThrow = true
		case insn.Op == ir.OpInvokeSuper:
			if reason := l.checkInvokeSuper(caller, callee); reason != Ok {
				return reason
			}
		case insn.Op.IsInvoke():
			if reason := l.checkCallee(caller, callee, insn); reason != Ok {
				return reason
			}
		case insn.Op.IsIget(), insn.Op.IsIput(), insn.Op.IsSget(), insn.Op.IsSput():
			if reason := l.checkField(caller, callee, insn); reason != Ok {
				return reason
			}
		}
	}
	if hasThrow && !l.Config.ThrowsInline {
		return ThrowsInline
	}
	if numReturns > 1 {
		return MultipleReturns
	}
	if reason := l.checkExternalCatch(body); reason != Ok {
		return reason
	}
	if reason := l.checkSize(caller, callee); reason != Ok {
		return reason
	}
	return Ok
}

// checkInvokeSuper implements NonrelocatableInvokeSuper: an
// invoke-super inside callee binds to callee's own superclass; moved
// into caller's class it would resolve differently unless caller and
// callee already share a class (or the config explicitly relaxes
// this).
func (l *Legality) checkInvokeSuper(caller, callee *ir.Method) Reason {
	if caller.Class == callee.Class {
		return Ok
	}
	if l.Config.SuperSameClassInline {
		return Ok
	}
	return NonrelocatableInvokeSuper
}

// checkCallee implements CreateVMethod and UnknownVirtual.
func (l *Legality) checkCallee(caller, callee *ir.Method, insn *ir.Instruction) Reason {
	ref := insn.Operand.Method
	target, ok := l.Resolver.ResolveMethod(ref, ir.SearchAny)
	if !ok {
		if insn.Op == ir.OpInvokeVirtual || insn.Op == ir.OpInvokeInterface {
			return UnknownVirtual
		}
		return Ok
	}
	if insn.Op == ir.OpInvokeDirect && !target.IsStatic() && (target.Access.IsPrivate() || target.Access.IsConstructor()) {
		if target.Class == caller.Class {
			return Ok
		}
		if l.Config.VirtualSameClassInline && target.Class == callee.Class {
			return Ok
		}
		l.ToPromote[target.Ref] = target
		return CreateVMethod
	}
	return Ok
}

// checkField implements UnknownField: a reference to a field that
// cannot be resolved, or that is non-public in a class the caller
// cannot reach, refuses the callsite.
func (l *Legality) checkField(caller, callee *ir.Method, insn *ir.Instruction) Reason {
	f := insn.Operand.Field
	if f.Equals(buildVersionCheckField) {
		return AndroidVersionCheck
	}
	kind := ir.FieldInstance
	if insn.Op.IsSget() || insn.Op.IsSput() {
		kind = ir.FieldStatic
	}
	def, ok := l.Resolver.ResolveField(f.Class, f.Name, f.FType, kind)
	if !ok {
		return UnknownField
	}
	if !def.Access.IsPublic() && def.Class != caller.Class {
		return UnknownField
	}
	return Ok
}

// checkExternalCatch implements ExternalCatch: a catch handler for a
// non-public external exception type cannot be relocated into the
// caller.
func (l *Legality) checkExternalCatch(body *ir.Code) Reason {
	for _, e := range edgesOf(body.CFG()) {
		if e.Kind != ir.EdgeException {
			continue
		}
		class, ok := l.Scope.Lookup(e.CatchType)
		if ok && class.IsExternal() && !class.Access.IsPublic() {
			return ExternalCatch
		}
	}
	return Ok
}

func edgesOf(cfg *ir.CFG) []*ir.BlockEdge {
	var out []*ir.BlockEdge
	for _, b := range cfg.Blocks {
		out = append(out, b.Succs...)
	}
	return out
}

// checkSize implements TooBig: the combined estimated size must fit
// the hard platform limit, and (unless the caller's class is
// allow-listed) the soft limit plus its lowering-overhead buffer.
func (l *Legality) checkSize(caller, callee *ir.Method) Reason {
	combined := InlinedCost(caller.Code()) + InlinedCost(callee.Code())
	if combined >= hardSizeLimit {
		return TooBig
	}
	if !l.Config.EnforceMethodSizeLimit {
		return Ok
	}
	for _, t := range l.Config.WhitelistNoMethodLimit {
		if t == caller.Class {
			return Ok
		}
	}
	if combined+instructionBufferSlack > softSizeLimit {
		return TooBig
	}
	return Ok
}
