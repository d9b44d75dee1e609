package hierarchy

import (
	"fmt"
	"regexp"
	"strconv"
)

// idPattern matches a letters-digits pair anywhere in an id, the grammar of
// interactively created ids such as "br-1". Outline-parser ids ("N12") do not
// match and never influence generation.
var idPattern = regexp.MustCompile(`([a-zA-Z]+)-([0-9]+)`)

// NextID derives a fresh id that cannot collide with any id in the store. It
// scans every id matching idPattern, takes the one with the highest numeric
// suffix and returns its prefix with the number incremented; with no matching
// id at all the fixed fallback "z-1" is returned.
//
// The prefix is inherited from whichever id happened to win on the number, so
// it carries no semantic meaning of its own. When several prefixes share the
// maximum number the winner depends on map iteration order and is not
// deterministic; only the numeric part is guaranteed. Suffixes too large for
// an int fail to parse and sit the scan out entirely, so such an id neither
// wins nor collides with what is generated.
func (s *Store) NextID() string {
	best := -1
	prefix := ""
	for id := range s.nodes {
		m := idPattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if num > best {
			best = num
			prefix = m[1]
		}
	}
	if best < 0 {
		return "z-1"
	}
	return fmt.Sprintf("%s-%d", prefix, best+1)
}
