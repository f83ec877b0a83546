package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// notesHeader is the first line of the persisted notes block. The format is a
// compatibility contract: projects persisted by older clients must keep
// decoding, including per-round suffixes they used to embed in item numbers.
const notesHeader = "Products:"

// lineRe matches one product line: optional bullet, quantity, "x", name,
// trailing parenthesized item number. Name is non-greedy so parentheses
// inside names don't swallow the item number.
var lineRe = regexp.MustCompile(`^\s*(?:[•*-]\s*)?(\d+)x\s+(.+?)\s+\(([^()]+)\)\s*$`)

// legacy per-round key suffixes: "_ordered" and "_new_<digits>".
var (
	orderedSuffixRe = regexp.MustCompile(`_ordered$`)
	newSuffixRe     = regexp.MustCompile(`_new_\d+$`)
)

// NormalizeItemNumber strips legacy round suffixes from an item number so
// historical notes collapse onto the real catalog code.
func NormalizeItemNumber(itemNumber string) string {
	s := orderedSuffixRe.ReplaceAllString(itemNumber, "")
	return newSuffixRe.ReplaceAllString(s, "")
}

// EncodeNotes renders line items into the persisted notes text. Returns the
// empty string for an empty list; callers treat "" as "no products".
// Encoding order is the input order.
func EncodeNotes(items []LineItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(notesHeader)
	for _, item := range items {
		b.WriteString(fmt.Sprintf("\n• %dx %s (%s)", item.Quantity, item.Name, item.ItemNumber))
	}
	return b.String()
}

// DecodeNotes parses persisted notes text into the raw per-line sequence.
// Lines that don't match the product pattern are skipped; legacy notes carry
// freeform text alongside product lines. Item numbers are normalized, but
// duplicates are NOT merged here; Merge owns the sum semantics.
func DecodeNotes(text string) []LineItem {
	if text == "" {
		return nil
	}
	var items []LineItem
	for _, line := range strings.Split(text, "\n") {
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			continue
		}
		items = append(items, LineItem{
			ItemNumber: NormalizeItemNumber(m[3]),
			Name:       m[2],
			Quantity:   qty,
		})
	}
	return items
}
