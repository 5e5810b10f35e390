package models

// FieldChange records one stored field that a merge actually moved. Fields
// whose submitted value equals the stored one produce no change.
type FieldChange struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Old     any    `json:"old"`
	New     any    `json:"new"`
}
