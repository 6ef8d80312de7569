package domain

import "time"

// DefaultBriefFilename is used until the model suggests a name.
const DefaultBriefFilename = "Case_Brief.docx"

// Case is the running state of one investigation.
type Case struct {
	ID         string         `json:"id"`
	Evidence   []EvidenceItem `json:"evidence"`
	Brief      string         `json:"brief"`
	Filename   string         `json:"filename"`
	Context    string         `json:"context,omitempty"`
	BriefItems int            `json:"brief_items"`
	TurnCount  int            `json:"turn_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewCase returns an empty case.
func NewCase(id string, now time.Time) *Case {
	return &Case{
		ID:        id,
		Filename:  DefaultBriefFilename,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BriefCurrent reports whether the brief covers every evidence item.
func (c *Case) BriefCurrent() bool {
	return c.Brief != "" && c.BriefItems == len(c.Evidence)
}

// Clear drops everything except identity.
func (c *Case) Clear(now time.Time) {
	c.Evidence = nil
	c.Brief = ""
	c.Filename = DefaultBriefFilename
	c.Context = ""
	c.BriefItems = 0
	c.TurnCount = 0
	c.UpdatedAt = now
}
