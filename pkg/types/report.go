package types

import "time"

// ResourceState classifies one observed resource against its IaC counterpart
type ResourceState string

const (
	// StateMatch means a counterpart was found and no field differs
	StateMatch ResourceState = "Match"
	// StateModified means a counterpart was found with at least one difference
	StateModified ResourceState = "Modified"
	// StateMissing means no IaC counterpart was found
	StateMissing ResourceState = "Missing"
)

// ChangeEntry is one field-level difference between a cloud resource and its
// IaC declaration. KeyName is a dot path with bracketed sequence indices,
// e.g. "tags.Owner" or "subnets[1].cidr_block". A side that lacks the field
// carries a null value.
type ChangeEntry struct {
	KeyName    string `json:"KeyName"`
	CloudValue any    `json:"CloudValue"`
	IacValue   any    `json:"IacValue"`
}

// ReportEntry is the analysis result for a single observed resource.
// IacResourceItem is null when no counterpart matched. ChangeLog is empty
// unless State is Modified.
type ReportEntry struct {
	CloudResourceItem *Record       `json:"CloudResourceItem"`
	IacResourceItem   *Record       `json:"IacResourceItem"`
	State             ResourceState `json:"State"`
	ChangeLog         []ChangeEntry `json:"ChangeLog"`
}

// Summary provides per-state counts for a report
type Summary struct {
	TotalResources int `json:"total_resources"`
	Matched        int `json:"matched"`
	Modified       int `json:"modified"`
	Missing        int `json:"missing"`
}

// HasDrift reports whether any resource diverged from its declaration
func (s Summary) HasDrift() bool {
	return s.Modified > 0 || s.Missing > 0
}

// Report is a complete analysis run: one entry per observed resource, in
// input order. The persisted wire format is the bare entries array; the
// summary and timestamp are derived metadata for display.
type Report struct {
	Entries   []ReportEntry
	Summary   Summary
	Timestamp time.Time
}
