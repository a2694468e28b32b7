// Package errors provides structured, coded error messages for markup.
//
// Every failure the library reports carries a short code (e.g. "M002")
// that maps to a registered template:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
//   - tree: structural errors (invalid tag, duplicate identifier, bad argument)
//   - codec: structured-map decoding errors
//   - config: markup.json errors
//   - output: document sink errors
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("M002").
//	    WithPath("children[1]").
//	    WithDetail(`identifier "nav" is already used`).
//	    Wrap(markup.ErrDuplicateIdentifier)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR M002: Duplicate identifier
//	//
//	//   at children[1]
//	//
//	//   identifier "nav" is already used
//	//
//	//   Learn more: https://vango.dev/docs/markup/errors/M002
//
// Errors built here wrap the sentinel values exported by pkg/markup, so
// callers match them with the standard library's errors.Is.
package errors
