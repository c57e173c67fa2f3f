// Package harness replays scripted keypad scenarios against a calculator
// session and records what the display showed after every key.
//
// Scenarios are YAML files:
//
//	name: chained_operations
//	description: Operators chain left to right
//	steps:
//	  - key: "9"
//	  - key: "*"
//	    expect: {pending: "9 ×"}
//	  - key: "3"
//	  - key: "="
//	    expect: {display: "27"}
//
// Each step may carry an expect clause; only the fields it names are checked.
// Transcripts of a run are compared against golden files in tests.
package harness
