package sessionRepo

import (
	"bytes"
	"encoding/json"
	"fmt"

	"signup/models"
)

// schemaVersion tags serialized session records. Decoding rejects any record
// whose version or shape does not match, rather than constructing a partial
// session from it.
const schemaVersion = 1

type sessionRecord struct {
	V       int             `json:"v"`
	Session *models.Session `json:"session"`
}

func encodeSession(session *models.Session) ([]byte, error) {
	data, err := json.Marshal(sessionRecord{V: schemaVersion, Session: session})
	if err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*models.Session, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var rec sessionRecord
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	if rec.V != schemaVersion {
		return nil, fmt.Errorf("session record schema version %d, want %d", rec.V, schemaVersion)
	}
	if rec.Session == nil {
		return nil, fmt.Errorf("session record has no session payload")
	}
	return rec.Session, nil
}
