package banner

import (
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
)

type BannerType string

const (
	BannerError   BannerType = "error"
	BannerWarning BannerType = "warning"
	BannerSuccess BannerType = "success"
)

type BannerProps struct {
	Type        BannerType
	Message     string
	Description string
	ID          string
	Class       string
}

func (p BannerProps) classes() string {
	base := "rounded-lg border px-4 py-3 text-sm"
	variant := "border-red-500/20 bg-red-500/10 text-red-400"
	switch p.Type {
	case BannerWarning:
		variant = "border-orange-500/20 bg-orange-500/10 text-orange-400"
	case BannerSuccess:
		variant = "border-green-500/20 bg-green-500/10 text-green-400"
	}
	return twmerge.Merge(base, variant, p.Class)
}
