package secrets

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the fixed-precision UTC layout used wherever an item's
// modification time is serialized.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// additionalData is authenticated but not encrypted. Fields are in
// alphabetical order so the encoding is byte-for-byte reproducible.
type additionalData struct {
	Account        *string `json:"account"`
	Label          string  `json:"label"`
	LastModifiedAt string  `json:"last_modified_at"`
}

// BuildAAD serializes an item's plaintext metadata into the associated data
// bound to its ciphertext. An empty account encodes as null.
func BuildAAD(label, account string, lastModifiedAt time.Time) ([]byte, error) {
	ad := additionalData{
		Label:          label,
		LastModifiedAt: FormatTimestamp(lastModifiedAt),
	}
	if account != "" {
		ad.Account = &account
	}

	return json.Marshal(ad)
}

// FormatTimestamp renders t in UTC with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
