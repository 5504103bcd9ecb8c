package dom

// Kind is the closed set of element categories the transformation stages
// dispatch on. It is derived from the tag name when a node is built.
type Kind int

const (
	KindOther Kind = iota
	KindHeading
	KindParagraph
	KindBreak
	KindStrong
	KindEmphasis
	KindCode
	KindPre
	KindImage
	KindPicture
	KindSource
	KindAnchor
	KindUnorderedList
	KindOrderedList
	KindListItem
	KindBlockquote
	KindFigure
	KindFigcaption

	// Noise elements removed by the sanitizer.
	KindScript
	KindStyle
	KindLink
	KindMeta
	KindIframe
	KindButton
	KindInput
	KindForm
	KindNav
	KindFooter
)

var kindByTag = map[string]Kind{
	"h1":         KindHeading,
	"h2":         KindHeading,
	"h3":         KindHeading,
	"h4":         KindHeading,
	"h5":         KindHeading,
	"h6":         KindHeading,
	"p":          KindParagraph,
	"br":         KindBreak,
	"strong":     KindStrong,
	"b":          KindStrong,
	"em":         KindEmphasis,
	"i":          KindEmphasis,
	"code":       KindCode,
	"pre":        KindPre,
	"img":        KindImage,
	"picture":    KindPicture,
	"source":     KindSource,
	"a":          KindAnchor,
	"ul":         KindUnorderedList,
	"ol":         KindOrderedList,
	"li":         KindListItem,
	"blockquote": KindBlockquote,
	"figure":     KindFigure,
	"figcaption": KindFigcaption,
	"script":     KindScript,
	"style":      KindStyle,
	"link":       KindLink,
	"meta":       KindMeta,
	"iframe":     KindIframe,
	"button":     KindButton,
	"input":      KindInput,
	"form":       KindForm,
	"nav":        KindNav,
	"footer":     KindFooter,
}

// KindOf maps a lower-case tag name to its Kind. Unknown tags are KindOther.
func KindOf(tag string) Kind {
	if k, ok := kindByTag[tag]; ok {
		return k
	}
	return KindOther
}

// HeadingLevel returns 1-6 for h1..h6 elements and 0 otherwise.
func (n *Node) HeadingLevel() int {
	if !n.Is(KindHeading) || len(n.Data) != 2 {
		return 0
	}
	return int(n.Data[1] - '0')
}

// IsList reports whether n is a ul or ol element.
func (n *Node) IsList() bool {
	return n.Is(KindUnorderedList) || n.Is(KindOrderedList)
}

// voidTags never have children and render without a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid reports whether n is a void element such as img or br.
func (n *Node) IsVoid() bool {
	return n.IsElement() && voidTags[n.Data]
}
