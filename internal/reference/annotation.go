package reference

// Annotation carries manual review decisions attached to a filename in a
// review report. Nil suggestions mean "keep the current value".
type Annotation struct {
	Quarantine      bool    `json:"quarantine"`
	SuggestedAuthor *string `json:"suggested_author"`
	SuggestedTitle  *string `json:"suggested_title"`
	SuggestedYear   *string `json:"suggested_year"`
}

// HasSuggestion reports whether any metadata change was requested.
func (a Annotation) HasSuggestion() bool {
	return a.SuggestedAuthor != nil || a.SuggestedTitle != nil || a.SuggestedYear != nil
}

// Merge folds other into a: quarantine is sticky and non-nil suggestions win.
func (a *Annotation) Merge(other Annotation) {
	a.Quarantine = a.Quarantine || other.Quarantine
	if other.SuggestedAuthor != nil {
		a.SuggestedAuthor = other.SuggestedAuthor
	}
	if other.SuggestedTitle != nil {
		a.SuggestedTitle = other.SuggestedTitle
	}
	if other.SuggestedYear != nil {
		a.SuggestedYear = other.SuggestedYear
	}
}
