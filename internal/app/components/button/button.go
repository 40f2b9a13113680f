package button

import (
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
)

type Type string

const (
	TypeButton Type = "button"
	TypeSubmit Type = "submit"
)

type Variant string

const (
	VariantPrimary Variant = "primary"
	VariantGhost   Variant = "ghost"
)

type Props struct {
	ID      string
	Type    Type
	Variant Variant
	Label   string
	Loading bool
	Class   string
}

func (p Props) typeAttr() string {
	if p.Type == "" {
		return string(TypeButton)
	}
	return string(p.Type)
}

func (p Props) classes() string {
	base := "inline-flex w-full items-center justify-center rounded-lg px-4 py-2.5 text-sm font-semibold transition-colors disabled:opacity-60"
	variant := "bg-orange-600 text-white hover:bg-orange-500"
	if p.Variant == VariantGhost {
		variant = "border border-white/10 text-white/60 hover:text-white hover:bg-white/5"
	}
	return twmerge.Merge(base, variant, p.Class)
}
