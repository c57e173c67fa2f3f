// Package domain contains the core domain types for keycalc.
//
// This package is the innermost layer of the application. It has no
// dependencies on infrastructure concerns (HTTP, configuration, logging) and
// contains only values and the rules attached to them.
//
// # Types
//
//   - [Operator]: one of the four binary arithmetic operations
//   - [Key]: a single keypad event (digit, decimal, operator, equals, clear, ...)
//   - [Outcome]: the tagged success-or-failure result of one calculation
//   - [Failure]: the reason a calculation did not produce a value
//   - [State]: the input state of a calculator ([Idle], [OperatorPending], [Accumulating])
//   - [DispatchMode]: whether calculations go to the remote service or stay local
//
// # Numbers
//
// [FormatNumber] is the single rule used to turn a result back into display
// text. [ParseNumber] is its inverse for buffer contents.
package domain
