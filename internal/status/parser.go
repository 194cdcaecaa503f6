package status

import "strings"

// jobRecord provides field access into one line of scontrol show job
// output. Fields are resolved by key name first, falling back to the
// positional token contract so truncated-but-ordered output still parses.
type jobRecord struct {
	tokens []string
	named  map[string]string
}

func parseJobRecord(raw string) jobRecord {
	tokens := strings.Fields(raw)
	named := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		if k, v, ok := strings.Cut(tok, "="); ok && k != "" {
			if _, dup := named[k]; !dup {
				named[k] = v
			}
		}
	}
	return jobRecord{tokens: tokens, named: named}
}

// field returns the value for the named field, using the positional token
// index when no token carries the name as a key.
func (r jobRecord) field(name string, pos int) (string, bool) {
	if v, ok := r.named[name]; ok {
		return v, true
	}
	if pos >= 0 && pos < len(r.tokens) {
		if _, v, ok := strings.Cut(r.tokens[pos], "="); ok {
			return v, true
		}
	}
	return "", false
}

// pendingReason extracts the value of the Reason= marker from the raw
// scontrol text. The value is truncated at the first space; scontrol
// emits space-delimited fields, so a reason containing spaces loses its
// tail here. Absent marker or missing trailing whitespace yields "".
func pendingReason(raw string) string {
	idx := strings.Index(raw, "Reason=")
	if idx < 0 {
		return ""
	}
	rest := raw[idx+len("Reason="):]
	end := strings.Index(rest, " ")
	if end < 0 {
		return ""
	}
	return rest[:end]
}
