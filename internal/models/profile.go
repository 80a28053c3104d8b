package models

// Modality enumerates the preferred teaching modality of an applicant.
type Modality string

const (
	ModalityOnsite Modality = "onsite"
	ModalityRemote Modality = "remote"
	ModalityHybrid Modality = "hybrid"
)

// EvidenceType enumerates the kinds of supporting evidence an applicant
// can attach to their profile.
type EvidenceType string

const (
	EvidenceCertificate EvidenceType = "CERTIFICATE"
	EvidenceDiploma     EvidenceType = "DIPLOMA"
	EvidencePublication EvidenceType = "PUBLICATION"
	EvidenceCourse      EvidenceType = "COURSE"
	EvidenceOther       EvidenceType = "OTHER"
)

// Valid reports whether t is a known evidence type.
func (t EvidenceType) Valid() bool {
	switch t {
	case EvidenceCertificate, EvidenceDiploma, EvidencePublication, EvidenceCourse, EvidenceOther:
		return true
	}
	return false
}

// Highlight is a single career highlight owned by exactly one profile.
type Highlight struct {
	ID          int64  `json:"id"`
	ProfileID   int64  `json:"profileId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	EvidenceURL string `json:"evidenceUrl,omitempty"`
}

// Evidence is a supporting document reference owned by exactly one profile.
// ContentHash is asserted by the client and verified server-side.
type Evidence struct {
	ID          int64        `json:"id"`
	ProfileID   int64        `json:"profileId"`
	Type        EvidenceType `json:"type"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	ContentHash string       `json:"contentHash"`
	IssueDate   string       `json:"issueDate,omitempty"`  // YYYY-MM-DD
	ExpiryDate  string       `json:"expiryDate,omitempty"` // YYYY-MM-DD
	Note        string       `json:"note,omitempty"`
}

// Profile is the per-user applicant profile with its child collections.
// There is exactly one profile per user, created implicitly on first save.
type Profile struct {
	ID                int64       `json:"id,omitempty"`
	UserID            int64       `json:"userId"`
	Summary           string      `json:"summary,omitempty"`
	PreferredModality Modality    `json:"preferredModality,omitempty"`
	Highlights        []Highlight `json:"highlights"`
	Evidence          []Evidence  `json:"evidence"`
}

// EmptyProfile returns a well-formed profile with non-nil collections.
// Used to normalize the backend's null response for users that have
// never saved a profile, so callers never need nil checks.
func EmptyProfile() *Profile {
	return &Profile{
		Highlights: []Highlight{},
		Evidence:   []Evidence{},
	}
}

// Normalize ensures the child collections are non-nil after decoding.
func (p *Profile) Normalize() {
	if p.Highlights == nil {
		p.Highlights = []Highlight{}
	}
	if p.Evidence == nil {
		p.Evidence = []Evidence{}
	}
}
