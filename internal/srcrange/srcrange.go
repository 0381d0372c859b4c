package srcrange

import "github.com/hashicorp/hcl/v2"

// Range locates a span of bytes inside a named source file. It is an alias
// for hcl.Range so that SourceRange values round-trip cleanly through any
// parser built on HCL's position model.
type Range = hcl.Range

// Pos is a single line/column/byte location, matching hcl.Pos.
type Pos = hcl.Pos

// SourceMap unions the source ranges that contributed to each merged
// ElemID, keyed by its full name. A full name may appear more than once:
// the list preserves every declaration site so errors and "jump to
// definition" style lookups can show the whole contribution set.
type SourceMap map[string][]Range

// Merge unions other into m in place, concatenating range lists for keys
// present in both maps. It mirrors the "union each blueprint's source_map
// into a single map (list-concat per key)" step of the workspace rebuild.
func (m SourceMap) Merge(other SourceMap) {
	for k, ranges := range other {
		m[k] = append(m[k], ranges...)
	}
}

// Slice extracts the byte span identified by r out of buf. It is the
// primitive used by the workspace when projecting merge/validation errors
// down to source fragments; callers are responsible for supplying the
// buffer that owns r (typically looked up by r.Filename).
func Slice(buf []byte, r Range) []byte {
	start, end := r.Start.Byte, r.End.Byte
	if start < 0 {
		start = 0
	}
	if end > len(buf) {
		end = len(buf)
	}
	if start >= end {
		return nil
	}
	return buf[start:end]
}
