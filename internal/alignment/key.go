package alignment

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jjtimmons/seqsign/internal/protein"
)

// keySpace namespaces alignment cache keys
var keySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("seqsign/alignment"))

// CacheKey returns the key a cache of alignment results should use for
// the proteins and segments. The key only depends on the sorted protein
// and segment IDs, so the input order doesn't matter
func CacheKey(proteins []protein.Protein, segments []protein.Segment) string {
	proteinIDs := make([]string, len(proteins))
	for i, p := range proteins {
		proteinIDs[i] = p.ID
	}
	sort.Strings(proteinIDs)

	segmentIDs := make([]string, 0, len(segments))
	for _, s := range segments {
		id := s.ID
		if s.Custom() {
			id += "[" + strings.Join(s.Positions, ",") + "]"
		}
		segmentIDs = append(segmentIDs, id)
	}
	sort.Strings(segmentIDs)

	key := strings.Join(proteinIDs, ",") + "_" + strings.Join(segmentIDs, ",")
	return "ALIGNMENT_" + uuid.NewMD5(keySpace, []byte(key)).String()
}
