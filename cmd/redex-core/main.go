// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/facebook/redex-core/internal/asmtext"
	"github.com/facebook/redex-core/internal/cse"
	"github.com/facebook/redex-core/internal/ir"
	"github.com/facebook/redex-core/internal/metrics"
	"github.com/facebook/redex-core/internal/passlog"
)

func main() {
	passlog.Configure(0)
	log := passlog.Get("cmd")

	if len(os.Args) < 2 {
		fmt.Println("Usage: redex-core <method.asm>")
		os.Exit(1)
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	code, err := asmtext.Build(string(source), 0)
	if err != nil {
		color.Red("❌ %s", err)
		os.Exit(1)
	}

	method := &ir.Method{
		Ref:      ir.MethodRef{Class: "Main", Name: "run", Proto: ir.Proto{Return: "V"}},
		Class:    "Main",
		CodeBody: code,
	}
	scope := ir.NewScope([]*ir.Class{{Name: "Main", Methods: []*ir.Method{method}}})
	resolver := ir.NewScopeResolver(scope)

	agg := metrics.NewAggregator()
	ss := cse.NewSharedState(scope, resolver, nil, cse.DefaultSafeTypes)

	log.Debugf("analyzing %s", path)
	result := cse.AnalyzeMethod(method, ss)
	n := cse.Apply(method, result.Forwards)
	agg.Add("cse_eliminated", int64(n))

	color.Green("✅ %s: eliminated %d redundant recomputation(s)", path, n)
	for _, insn := range method.Code().Instructions() {
		fmt.Printf("  %s\n", insn.Op)
	}

	snapshot := agg.Snapshot()
	color.Cyan("metrics (run %s):", agg.RunID())
	for category, v := range snapshot {
		fmt.Printf("  %-24s %d\n", category, v)
	}
}
