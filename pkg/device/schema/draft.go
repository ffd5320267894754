package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/urmzd/autovolt/pkg/device"
)

//go:embed draft.schema.json
var draftSchema []byte

// DraftSchema is the shape a device draft must have before any pin
// validation is attempted.
var DraftSchema = json.RawMessage(draftSchema)

// ValidateDraft checks d against DraftSchema and returns field-keyed
// failures, or nil when the draft is well formed.
func (v *Validator) ValidateDraft(d device.Draft) []FieldError {
	payload, err := toJSONValue(d)
	if err != nil {
		return []FieldError{{Message: err.Error()}}
	}
	return FieldErrors(v.Validate(DraftSchema, payload))
}

// toJSONValue round-trips v through JSON so the schema sees exactly what
// would be sent on the wire, including omitted optional pins.
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return value, nil
}
