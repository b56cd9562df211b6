package resume

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrAnchorNotFound    = errors.New("anchor not found")
)

// UnsupportedLocaleError is returned when segmentation is asked for a locale
// without an anchor vocabulary.
type UnsupportedLocaleError struct {
	Locale Locale
}

func (e *UnsupportedLocaleError) Error() string {
	return fmt.Sprintf("cannot format data: unsupported locale %q", e.Locale)
}

func (e *UnsupportedLocaleError) Is(target error) bool {
	return target == ErrUnsupportedLocale
}

// AnchorNotFoundError names the required section heading missing from the text.
type AnchorNotFoundError struct {
	Section SectionName
	Keyword string
	Locale  Locale
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor %q for section %s not found (%s)", e.Keyword, e.Section, e.Locale)
}

func (e *AnchorNotFoundError) Is(target error) bool {
	return target == ErrAnchorNotFound
}
