package markup

import (
	"errors"

	mkerrors "github.com/vango-dev/markup/internal/errors"
)

var (
	// ErrInvalidTag is returned when a tag is outside the permitted set.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrDuplicateIdentifier is returned when an id is already used in the
	// destination tree.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrInvalidArgument is returned for unknown nodes, cycles, nodes that
	// are still attached, and malformed structured maps.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is reported to observers when Remove finds nothing.
	ErrNotFound = errors.New("not found")
)

func invalidTag(tag string) error {
	return mkerrors.New("M001").
		WithDetailf("%q is not a valid tag name", tag).
		WithSuggestion("Use one of the names returned by markup.Tags()").
		Wrap(ErrInvalidTag)
}

func duplicateIdentifier(id string) error {
	return mkerrors.New("M002").
		WithDetailf("identifier %q is already used in the destination tree", id).
		WithSuggestion("Clone the element or remove the existing one first").
		Wrap(ErrDuplicateIdentifier)
}

func invalidArgument(format string, args ...any) error {
	return mkerrors.New("M003").
		WithDetailf(format, args...).
		Wrap(ErrInvalidArgument)
}

func malformedMap(format string, args ...any) *mkerrors.MarkupError {
	return mkerrors.New("M010").
		WithDetailf(format, args...).
		Wrap(ErrInvalidArgument)
}

// withPath records where in a structured map err happened.
func withPath(err error, path string) error {
	if path == "" {
		return err
	}
	var me *mkerrors.MarkupError
	if errors.As(err, &me) && me.Path == "" {
		me.Path = path
	}
	return err
}
