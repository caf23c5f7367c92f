package gpml

import (
	"fmt"
	"hash/fnv"
	"io"

	"github.com/pathmark/pathmark/pkg/model"
)

// backfillLineIDs assigns identifiers to lines that were stored without one.
// Legacy documents routinely omit GraphId on interactions, so the identifier
// is derived from stable line content (kind plus endpoint geometry) rather
// than drawn from the random allocator. The same document therefore yields
// the same backfilled identifiers on every read.
func backfillLineIDs(p *model.Pathway) error {
	reg := p.Registry()
	for _, line := range p.Lines() {
		lc := line.Line()
		if lc.ElementID != "" {
			continue
		}
		base := deriveLineID(line)
		id := base
		for salt := 1; reg.Register(id, line) != nil; salt++ {
			id = model.Salted(base, salt)
		}
		lc.ElementID = id
	}
	return nil
}

// deriveLineID hashes the line kind and endpoint geometry into a five
// character identifier shaped like an allocated one (leading a-f).
func deriveLineID(line model.LineElement) string {
	lc := line.Line()
	h := fnv.New64a()
	io.WriteString(h, line.Kind())
	for _, pt := range []*model.Point{lc.StartPoint(), lc.EndPoint()} {
		if pt == nil {
			continue
		}
		fmt.Fprintf(h, "|%.4f,%.4f,%s", pt.X, pt.Y, pt.ElementRef)
	}

	sum := h.Sum64()
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 5)
	buf[0] = byte('a' + sum%6)
	sum /= 6
	for i := 1; i < len(buf); i++ {
		buf[i] = hexDigits[sum&0xf]
		sum >>= 4
	}
	return string(buf)
}
