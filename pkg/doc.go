// Package pkg provides the core libraries for flowbasis basis enumeration.
//
// # Overview
//
// flowbasis takes an R×C measurement matrix (R flow balances over C flows)
// and enumerates every set of R columns that forms a full-rank square basis.
// For each column it reports how many feasible bases leave the column out,
// the sums of their condition numbers and the column's impact.
//
// The pkg directory is organized into three areas:
//
//  1. Domain logic: [colset], [matrix], [trie], [stats], [basis]
//  2. Infrastructure: [io], [cache], [config], [errors], [observability], [buildinfo]
//  3. Orchestration and output: [pipeline], [report]
//
// # Architecture
//
// The typical data flow:
//
//	matrix file
//	     ↓
//	[io] package (parse rows plus known/unknowable column lists)
//	     ↓
//	[basis] package (RREF pivots, depth-first column search, [trie] dedup)
//	     ↓
//	[matrix] package (LU solvability and condition number per candidate)
//	     ↓
//	[stats] package (per-column counters)
//	     ↓
//	[report] package (text, table, JSON or YAML)
//
// [pipeline] runs these steps with caching through [cache] and is shared by
// the CLI and the HTTP server.
//
// # Quick Start
//
//	m, err := io.ImportMatrix("network.txt")
//	if err != nil {
//	    return err
//	}
//	s, err := basis.Analyze(m, basis.Options{})
//	if err != nil {
//	    return err
//	}
//	report.Write(os.Stdout, report.New(s), report.FormatText)
package pkg
