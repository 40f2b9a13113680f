package input

import (
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
)

type Props struct {
	Label        string
	Name         string
	Type         string
	Value        string
	Placeholder  string
	Error        string
	Autocomplete string
	// Attrs carries extra attributes verbatim, e.g. htmx triggers on the
	// signup password field.
	Attrs templ.Attributes
}

func (p Props) typeAttr() string {
	if p.Type == "" {
		return "text"
	}
	return p.Type
}

func (p Props) classes() string {
	base := "w-full rounded-lg border bg-white/5 px-3 py-2.5 text-sm text-white placeholder-white/25 outline-none transition-colors focus:border-orange-500/60"
	border := "border-white/10"
	if p.Error != "" {
		border = "border-red-500/60"
	}
	return twmerge.Merge(base, border)
}
