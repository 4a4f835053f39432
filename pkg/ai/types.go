package ai

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrRateLimited indicates the provider rejected the call for quota reasons.
// GenerateStructured retries this class internally before surfacing it.
var ErrRateLimited = errors.New("generation capability rate limited")

// ErrUnavailable indicates the capability could not produce a usable response:
// transport failure, empty completion, malformed JSON, or a response that does
// not match the expected shape.
var ErrUnavailable = errors.New("generation capability unavailable")

// Generator produces a structured record from a natural-language instruction.
// The shape, when non-nil, is enforced against the decoded response before it
// is returned.
type Generator interface {
	GenerateStructured(ctx context.Context, instruction string, shape *jsonschema.Schema) (json.RawMessage, error)
}
