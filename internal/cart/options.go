package cart

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/money"
)

// Options tunes store behaviour.
type Options struct {
	// MergeDuplicates makes AddItem bump the quantity of an existing line for
	// the same product instead of appending a new line.
	MergeDuplicates bool
	Formatter       *money.Formatter
	Recorder        Recorder
	// NewLineID overrides line id generation, mainly for tests.
	NewLineID func() LineID
}

func (o Options) withDefaults() Options {
	if o.Formatter == nil {
		o.Formatter = money.Default()
	}
	if o.NewLineID == nil {
		o.NewLineID = func() LineID { return LineID(uuid.NewString()) }
	}
	return o
}
