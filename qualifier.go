package afm

// ObjQualifier references a metadata object either by URI or by symbolic
// identifier. Producers are expected to set exactly one; when both are set
// the URI wins.
type ObjQualifier struct {
	URI        string `json:"uri,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

// ResolveID returns the identity of the referenced object, preferring the
// URI over the identifier. It reports false when neither is set, a state
// callers must treat as "matches nothing".
func (q ObjQualifier) ResolveID() (string, bool) {
	if q.URI != "" {
		return q.URI, true
	}
	if q.Identifier != "" {
		return q.Identifier, true
	}
	return "", false
}

// Matches reports whether both qualifiers resolve to the same identity.
// It is false whenever either side resolves to nothing.
func (q ObjQualifier) Matches(other ObjQualifier) bool {
	id, ok := q.ResolveID()
	if !ok {
		return false
	}
	otherID, ok := other.ResolveID()
	if !ok {
		return false
	}
	return id == otherID
}
