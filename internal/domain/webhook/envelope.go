package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"visa-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const SignatureHeader = "x-webhook-signature"

// reserved keys always come from the log, never from the payload
const (
	keyEventID   = "event_id"
	keyEventType = "event_type"
)

// EncodePayload flattens a typed event into the JSON object stored on the log.
func EncodePayload(e Event) (json.RawMessage, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode webhook payload")
	}
	return raw, nil
}

// BuildEnvelope serializes {event_id, event_type, ...payload}. Keys are emitted in
// sorted order, so the same log always yields the same bytes.
func BuildEnvelope(eventID uuid.UUID, eventType EventType, payload json.RawMessage) ([]byte, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, errs.Wrap(err, "webhook payload is not a JSON object")
	}
	fields[keyEventID] = eventID.String()
	fields[keyEventType] = string(eventType)

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode webhook envelope")
	}
	return body, nil
}

// decodeObject keeps numbers as json.Number so integers survive a re-encode digit for digit.
func decodeObject(raw json.RawMessage) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) == 0 {
		return fields, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Sign returns the hex HMAC-SHA256 of body keyed by secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func Verify(secret string, body []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
