// Package recovery resolves which draft a freshly opened window should
// edit. A navigation intent names a (form, record) pair and may carry
// the full record inline; resolution walks a fixed fallback chain so
// the form collaborator always receives a well-formed record, even when
// every storage layer is empty or disabled.
package recovery

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/intake/pkg/assessment"
)

// FragmentPrefix introduces a deep link to a specific record.
const FragmentPrefix = "assessment"

// Intent is a navigation request: open recordID in the named form. The
// inline payload, when present, is the base64 JSON of the full record
// and works even when every storage layer is unavailable.
type Intent struct {
	FormType string
	RecordID string
	Inline   []byte
}

var errBadFragment = errors.New("recovery: not an assessment fragment")

// ParseFragment parses "assessment/{form}/{id}" into an intent. A
// leading "#" is tolerated so pasted browser-style fragments work.
func ParseFragment(fragment string) (Intent, error) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	parts := strings.Split(fragment, "/")
	if len(parts) < 3 || parts[0] != FragmentPrefix {
		return Intent{}, errBadFragment
	}
	form := strings.ToLower(parts[1])
	id := parts[2]
	if form == "" || id == "" {
		return Intent{}, errBadFragment
	}
	return Intent{FormType: form, RecordID: id}, nil
}

// ParseLink parses a full deep link, i.e. a fragment with an optional
// "?data=" inline payload suffix as produced by ShareLink.
func ParseLink(link string) (Intent, error) {
	fragment := link
	query := ""
	if idx := strings.IndexByte(link, '?'); idx >= 0 {
		fragment, query = link[:idx], link[idx+1:]
	}
	intent, err := ParseFragment(fragment)
	if err != nil {
		return Intent{}, err
	}
	for _, pair := range strings.Split(query, "&") {
		if value, ok := strings.CutPrefix(pair, "data="); ok {
			intent = intent.WithData(value)
		}
	}
	return intent, nil
}

// Fragment renders the intent back into its address form.
func (i Intent) Fragment() string {
	return fmt.Sprintf("%s/%s/%s", FragmentPrefix, i.FormType, i.RecordID)
}

// WithData attaches a base64 inline payload (the `data` query
// parameter) to the intent. Malformed encodings are dropped, not
// surfaced; the resolution chain just advances past the inline step.
func (i Intent) WithData(encoded string) Intent {
	if encoded == "" {
		return i
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return i
	}
	i.Inline = raw
	return i
}

// EncodeData renders the record as the base64 inline payload carried on
// share links, so a receiving window can open it with storage disabled.
func EncodeData(rec assessment.Record) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ShareLink renders the full deep link for a record: fragment plus
// inline payload.
func ShareLink(rec assessment.Record) string {
	intent := Intent{FormType: rec.Type.Slug(), RecordID: rec.ID}
	encoded, err := EncodeData(rec)
	if err != nil {
		return intent.Fragment()
	}
	return intent.Fragment() + "?data=" + encoded
}
