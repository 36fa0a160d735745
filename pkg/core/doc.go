// Package core holds the string operations and the boundary service that
// every outer surface (CLI, HTTP, file batch) goes through.
//
// The operations themselves are pure functions over Go strings:
//
//	core.Reverse("hello world")         // "dlrow olleh"
//	core.CountVowels("hello world")     // 3
//	core.CapitalizeWords("hello world") // "Hello World"
//
// A character is a Unicode code point. Input is expected to be valid UTF-8;
// the Service rejects anything else with ErrInvalidArgument.
package core
