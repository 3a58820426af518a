package docgen

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// fingerprint derives the cache key for a request:
// "<kind>:<sourceID>:<hash>", where the hash covers the full typed input, the
// source modification time and every config knob that affects layout. The
// kind and source id stay in clear text so Invalidate can drop entries by
// prefix. JSON encoding of the input structs is deterministic (no maps), so
// equal requests always hash equally.
func (e *Engine) fingerprint(req Request) string {
	h := xxhash.New()
	enc := json.NewEncoder(h)

	// encode errors are impossible for these plain structs; ignore them
	_ = enc.Encode(struct {
		Kind string
		Cfg  Config
	}{string(req.Kind), e.cfg})
	_ = enc.Encode(req.Info)
	_ = enc.Encode(req.LastModified.UTC())

	switch {
	case req.Invoice != nil:
		_ = enc.Encode(req.Invoice)
	case req.Proposal != nil:
		_ = enc.Encode(req.Proposal)
	case req.Contract != nil:
		_ = enc.Encode(req.Contract)
	case req.Intake != nil:
		_ = enc.Encode(req.Intake)
	case req.Markdown != "":
		_, _ = h.WriteString(req.Markdown)
	}
	return fmt.Sprintf("%s:%s:%016x", req.Kind, req.SourceID, h.Sum64())
}
