// Package cfhtml encodes and decodes the Windows clipboard "HTML Format"
// container: an HTML document prefixed with a fixed-grammar header of
// byte offsets into the full payload (header included).
//
// The format is byte-oriented. Every offset counts bytes from the start of
// the container, never runes, and slicing on decode happens on the raw
// container text.
package cfhtml

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"richclip/pkg/errors"
)

// Version is the value written to the header's Version field.
const Version = "1.0"

// Container holds the decoded fields of an HTML Format payload.
type Container struct {
	Version   string `json:"version" yaml:"version"`
	HTML      string `json:"html" yaml:"html"`
	Fragment  string `json:"fragment" yaml:"fragment"`
	Selection string `json:"selection" yaml:"selection"`
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// defaultSkeleton wraps a bare fragment into a minimal document carrying the
// required StartFragment/EndFragment comment pair.
const (
	skeletonPrefix = "<!DOCTYPE html><HTML><BODY><!--StartFragment-->"
	skeletonSuffix = "<!--EndFragment--></BODY></HTML>"
)

// Header grammars, tried in order. The extended grammar carries explicit
// selection offsets; the basic grammar does not, and the selection then
// defaults to the fragment.
var (
	extendedHeaderRe = regexp.MustCompile(`^Version:(\S+)\r\n` +
		`StartHTML:(\d+)\r\n` +
		`EndHTML:(\d+)\r\n` +
		`StartFragment:(\d+)\r\n` +
		`EndFragment:(\d+)\r\n` +
		`StartSelection:(\d+)\r\n` +
		`EndSelection:(\d+)\r\n` +
		`SourceURL:(.*)\r\n`)

	basicHeaderRe = regexp.MustCompile(`^Version:(\S+)\r\n` +
		`StartHTML:(\d+)\r\n` +
		`EndHTML:(\d+)\r\n` +
		`StartFragment:(\d+)\r\n` +
		`EndFragment:(\d+)\r\n` +
		`SourceURL:(.*)\r\n`)
)

// renderHeader formats the eight header fields. Offsets are zero-padded to a
// fixed nine digits, so the rendered length depends only on the source string
// and not on the offset values.
func renderHeader(startHTML, endHTML, startFrag, endFrag, startSel, endSel int, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version:%s\r\n", Version)
	fmt.Fprintf(&b, "StartHTML:%09d\r\n", startHTML)
	fmt.Fprintf(&b, "EndHTML:%09d\r\n", endHTML)
	fmt.Fprintf(&b, "StartFragment:%09d\r\n", startFrag)
	fmt.Fprintf(&b, "EndFragment:%09d\r\n", endFrag)
	fmt.Fprintf(&b, "StartSelection:%09d\r\n", startSel)
	fmt.Fprintf(&b, "EndSelection:%09d\r\n", endSel)
	fmt.Fprintf(&b, "SourceURL:%s\r\n", source)
	return b.String()
}

// Encode wraps doc into an HTML Format container. The fragment and selection
// ranges are byte offsets into doc; the header offsets are shifted by the
// header's own length, which is learned by rendering the header once with
// zero offsets (the fixed-width padding makes its length independent of the
// values).
func Encode(doc string, fragStart, fragEnd, selStart, selEnd int, source string) ([]byte, error) {
	if fragStart < 0 || fragStart > fragEnd || fragEnd > len(doc) {
		return nil, errors.InvalidRangeError(fmt.Sprintf("fragment [%d,%d) outside document of %d bytes", fragStart, fragEnd, len(doc)))
	}
	if selStart < 0 || selStart > selEnd || selEnd > len(doc) {
		return nil, errors.InvalidRangeError(fmt.Sprintf("selection [%d,%d) outside document of %d bytes", selStart, selEnd, len(doc)))
	}

	headerLen := len(renderHeader(0, 0, 0, 0, 0, 0, source))

	header := renderHeader(
		headerLen,
		len(doc)+headerLen,
		fragStart+headerLen,
		fragEnd+headerLen,
		selStart+headerLen,
		selEnd+headerLen,
		source,
	)
	return []byte(header + doc), nil
}

// EncodeFromFragment is the convenience entry point: it locates fragment and
// selection as their first literal occurrence inside doc and delegates to
// Encode. An empty selection defaults to the fragment; an empty doc wraps the
// fragment in a minimal skeleton document.
func EncodeFromFragment(doc, fragment, selection, source string) ([]byte, error) {
	if selection == "" {
		selection = fragment
	}
	if doc == "" {
		doc = skeletonPrefix + fragment + skeletonSuffix
	}

	fragStart := strings.Index(doc, fragment)
	if fragStart < 0 {
		return nil, errors.NotFoundError("fragment")
	}
	selStart := strings.Index(doc, selection)
	if selStart < 0 {
		return nil, errors.NotFoundError("selection")
	}

	return Encode(doc, fragStart, fragStart+len(fragment), selStart, selStart+len(selection), source)
}

// Decode parses an HTML Format container. The extended grammar is tried
// first, then the basic grammar; anything else fails with a parse error and
// no partial result. Fields are sliced out of the raw container at the parsed
// absolute offsets.
func Decode(container string) (*Container, error) {
	if m := extendedHeaderRe.FindStringSubmatch(container); m != nil {
		startHTML, endHTML := mustInt(m[2]), mustInt(m[3])
		startFrag, endFrag := mustInt(m[4]), mustInt(m[5])
		startSel, endSel := mustInt(m[6]), mustInt(m[7])

		if err := checkOffsets(container, startHTML, endHTML, startFrag, endFrag); err != nil {
			return nil, err
		}
		if err := checkOffsets(container, startHTML, endHTML, startSel, endSel); err != nil {
			return nil, err
		}

		return &Container{
			Version:   m[1],
			HTML:      container[startHTML:endHTML],
			Fragment:  container[startFrag:endFrag],
			Selection: container[startSel:endSel],
			SourceURL: m[8],
		}, nil
	}

	if m := basicHeaderRe.FindStringSubmatch(container); m != nil {
		startHTML, endHTML := mustInt(m[2]), mustInt(m[3])
		startFrag, endFrag := mustInt(m[4]), mustInt(m[5])

		if err := checkOffsets(container, startHTML, endHTML, startFrag, endFrag); err != nil {
			return nil, err
		}

		fragment := container[startFrag:endFrag]
		return &Container{
			Version:   m[1],
			HTML:      container[startHTML:endHTML],
			Fragment:  fragment,
			Selection: fragment, // basic grammar carries no selection fields
			SourceURL: m[6],
		}, nil
	}

	return nil, errors.ParseError("header matches neither the extended nor the basic grammar")
}

// checkOffsets enforces the container invariants
// StartHTML <= inner start <= inner end <= EndHTML over absolute offsets.
func checkOffsets(container string, startHTML, endHTML, start, end int) error {
	if endHTML > len(container) {
		return errors.ParseError(fmt.Sprintf("EndHTML %d past container of %d bytes", endHTML, len(container)))
	}
	if startHTML > start || start > end || end > endHTML {
		return errors.ParseError(fmt.Sprintf("offsets %d..%d violate StartHTML %d / EndHTML %d ordering", start, end, startHTML, endHTML))
	}
	return nil
}

func mustInt(s string) int {
	// The grammars only capture \d+, so this cannot fail.
	n, _ := strconv.Atoi(s)
	return n
}
