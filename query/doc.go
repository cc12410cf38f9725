// Package query provides composable, deferred-execution query operators
// over arbitrary sequences.
//
// A Query is lazy: constructing it and chaining operators never touches
// the source. Work happens only when a terminal operator (ToSlice, Count,
// First, Aggregate, ...) pulls values through the chain. Each stage pulls
// from the previous stage on demand, so Take and TakeWhile stop the whole
// chain early, even over infinite sources.
//
// # Sources
//
// Queries built from FromSlice, Of, Range, Repeat and FromFunc are
// restartable: every terminal call drives the chain again from the start.
// Queries built from From (an Iterator) or FromChannel wrap a one-shot
// cursor. They are single-use: once a terminal has driven them, driving
// them again yields nothing. FromSeq is restartable exactly when the
// wrapped iter.Seq is.
//
// # Operators
//
// Type-preserving operators are methods:
//
//   - Where, Filter: keep matching values (Where also receives the input index)
//   - Skip, SkipWhile, Take, TakeWhile: prefix control
//   - Concat, Reverse, DefaultIfEmpty, Tap, Tee, OrderByFunc
//
// Operators that change the element type or need comparable/ordered
// elements are package-level functions, because Go methods cannot declare
// type parameters:
//
//   - Select, SelectMany, SelectManyResult, Cast, OfType, Zip
//   - Distinct, Union, Intersect, Except
//   - OrderBy, OrderByDescending, ThenBy, ThenByDescending
//   - GroupBy, GroupByElement, GroupByResult, Join, GroupJoin
//
// Operators that must see the whole input (OrderBy, Reverse, GroupBy,
// Distinct, Intersect, the outer side of Join and GroupJoin, the comparison
// side of Except) buffer it on the first pull, not when they are called.
//
// # Terminals
//
// Every terminal returns an error alongside its result. Errors come from
// the sequence itself (errors.ErrNoSuchElement, errors.ErrTooManyElements,
// errors.ErrOutOfRange) or from caller conversions (errors.ErrConversionFailed,
// errors.ErrTypeMismatch). A terminal that fails returns the zero value.
//
// # Concurrency
//
// Evaluation is synchronous and single-goroutine. A Query may be shared by
// goroutines only if its source is restartable and each goroutine runs its
// own terminal; one-shot sources must not be driven concurrently.
//
// # Usage
//
//	evens := query.FromSlice([]int{1, 2, 3, 4, 5, 6}).
//	    Where(func(n, _ int) bool { return n%2 == 0 })
//	squares := query.Select(evens, func(n int) int { return n * n })
//	total, err := query.Sum(squares)
package query
