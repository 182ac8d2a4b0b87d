package base

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// FlagSet wraps a flag.FlagSet with help rendering in the command style.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned rather than printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.Usage = func() {}
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help renders the flags as an "Options:" section.
func (f *FlagSet) Help() string {
	var flags []*flag.Flag
	f.VisitAll(func(fl *flag.Flag) { flags = append(flags, fl) })
	if len(flags) == 0 {
		return ""
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].Name < flags[j].Name })

	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	for _, fl := range flags {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	}
	return b.String()
}
