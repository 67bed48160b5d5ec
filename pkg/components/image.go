package components

import "github.com/recera/vango-atomic/pkg/styling"

// ImageClassName is the static class every image carries
const ImageClassName = "ui-image"

// ImageStylesProps are the image props that affect styling
type ImageStylesProps struct {
	// Avatar formats the image to appear inline with text as an avatar
	Avatar bool
	// Circular makes the image round
	Circular bool
	// Fluid makes the image take up the width of its container
	Fluid bool
}

func (p ImageStylesProps) state() map[string]bool {
	return map[string]bool{
		"avatar":   p.Avatar,
		"circular": p.Circular,
		"fluid":    p.Fluid,
	}
}

// imageStyles is the compiled form of:
//
//	base:     box-sizing: border-box; display: inline-block; height: auto; vertical-align: middle
//	avatar:   border-radius: pxToRem(9999); width: pxToRem(32)
//	circular: border-radius: pxToRem(9999)
//	fluid:    width: 100%
var imageStyles = styling.MakeStyles([]styling.Rule{
	{
		Definitions: styling.DefinitionSet{
			{Property: "boxSizing", Definition: styling.Definition{ClassName: "a1ewtqcl", CSS: ".a1ewtqcl{box-sizing:border-box;}"}},
			{Property: "display", Definition: styling.Definition{ClassName: "a14t3ns0", CSS: ".a14t3ns0{display:inline-block;}"}},
			{Property: "height", Definition: styling.Definition{ClassName: "a11ysow2", CSS: ".a11ysow2{height:auto;}"}},
			{Property: "verticalAlign", Definition: styling.Definition{ClassName: "amrv4ls", CSS: ".amrv4ls{vertical-align:middle;}"}},
		},
	},
	{
		When: styling.Selectors{"avatar": true},
		Definitions: styling.DefinitionSet{
			{Property: "borderRadius", Definition: styling.Definition{ClassName: "a10yvfpk", CSS: ".a10yvfpk{border-radius:714.2143rem;}"}},
			{Property: "width", Definition: styling.Definition{ClassName: "a10vq2gu", CSS: ".a10vq2gu{width:2.2857rem;}"}},
		},
	},
	{
		When: styling.Selectors{"circular": true},
		Definitions: styling.DefinitionSet{
			{Property: "borderRadius", Definition: styling.Definition{ClassName: "a10yvfpk", CSS: ".a10yvfpk{border-radius:714.2143rem;}"}},
		},
	},
	{
		When: styling.Selectors{"fluid": true},
		Definitions: styling.DefinitionSet{
			{Property: "width", Definition: styling.Definition{ClassName: "aly5x3f", CSS: ".aly5x3f{width:100%;}"}},
		},
	},
})

// ImageStyles injects the rules an image needs into target and returns
// its class attribute, followed by className when given
func ImageStyles(target *styling.RenderTarget, rtl bool, props ImageStylesProps, className string) (string, error) {
	return imageStyles.ClassName(target, rtl, props.state(), ImageClassName, className)
}
