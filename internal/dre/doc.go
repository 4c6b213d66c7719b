// Package dre implements the income statement (DRE — Demonstração do
// Resultado do Exercício) and unit-economics calculation engine.
//
// Every function here is a pure, synchronous computation over its input
// snapshot: no storage access, no retries, no shared state. Invocations with
// identical inputs produce identical results. All division-by-zero cases
// resolve to zero by contract; outputs never contain NaN or Inf.
package dre
