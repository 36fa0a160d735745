// Package strops is the public entry point of the strops library.
//
// It exposes three pure string operations and a Service that wraps them
// with input validation, optional Unicode normalization and observability
// hooks. The CLI (cmd/strops), the file batch/watch adapters and the HTTP
// server are all built on the same Service.
//
// Features:
//
//   - **Pure operations**: Reverse, CountVowels and CapitalizeWords never mutate
//     their input and are safe for concurrent use.
//   - **Validated boundary**: the Service rejects text that is not valid UTF-8
//     with ErrInvalidArgument.
//   - **Functional options**: logger, NFC normalization and observers are wired
//     through Option values.
//
// Usage:
//
//	strops.Reverse("hello world")         // "dlrow olleh"
//	strops.CountVowels("hello world")     // 3
//	strops.CapitalizeWords("hello world") // "Hello World"
//
//	// Validated calls through the service
//	svc := strops.New(strops.WithLogger(logger))
//	res, err := svc.Run(ctx, strops.OpReverse, "hello world")
package strops
