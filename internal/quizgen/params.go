package quizgen

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCount is the number of questions generated when none is given.
const DefaultCount = 5

// Subject is a school subject the quiz can cover.
type Subject string

const (
	SubjectMathematics Subject = "mathematics"
	SubjectPhysics     Subject = "physics"
	SubjectChemistry   Subject = "chemistry"
	SubjectBiology     Subject = "biology"
	SubjectIndonesian  Subject = "indonesian"
	SubjectEnglish     Subject = "english"
	SubjectHistory     Subject = "history"
	SubjectGeography   Subject = "geography"
	SubjectEconomics   Subject = "economics"
	SubjectSociology   Subject = "sociology"
	SubjectInformatics Subject = "informatics"
	SubjectScience     Subject = "science"
	SubjectSocial      Subject = "social-studies"
	SubjectCivics      Subject = "civics"
	SubjectArts        Subject = "arts"
)

var subjectNames = map[Subject]string{
	SubjectMathematics: "Mathematics",
	SubjectPhysics:     "Physics",
	SubjectChemistry:   "Chemistry",
	SubjectBiology:     "Biology",
	SubjectIndonesian:  "Indonesian Language",
	SubjectEnglish:     "English",
	SubjectHistory:     "History",
	SubjectGeography:   "Geography",
	SubjectEconomics:   "Economics",
	SubjectSociology:   "Sociology",
	SubjectInformatics: "Informatics",
	SubjectScience:     "Natural Science",
	SubjectSocial:      "Social Studies",
	SubjectCivics:      "Civics",
	SubjectArts:        "Arts and Culture",
}

// subjectAliases maps the Indonesian curriculum names.
var subjectAliases = map[string]Subject{
	"matematika":       SubjectMathematics,
	"fisika":           SubjectPhysics,
	"kimia":            SubjectChemistry,
	"biologi":          SubjectBiology,
	"bahasa indonesia": SubjectIndonesian,
	"bahasa inggris":   SubjectEnglish,
	"sejarah":          SubjectHistory,
	"geografi":         SubjectGeography,
	"ekonomi":          SubjectEconomics,
	"sosiologi":        SubjectSociology,
	"informatika":      SubjectInformatics,
	"ipa":              SubjectScience,
	"ips":              SubjectSocial,
	"ppkn":             SubjectCivics,
	"seni budaya":      SubjectArts,
}

// Subjects lists the catalogue in display order.
var Subjects = []Subject{
	SubjectMathematics, SubjectPhysics, SubjectChemistry, SubjectBiology,
	SubjectIndonesian, SubjectEnglish, SubjectHistory, SubjectGeography,
	SubjectEconomics, SubjectSociology, SubjectInformatics,
	SubjectScience, SubjectSocial, SubjectCivics, SubjectArts,
}

// DisplayName returns the human-readable subject name.
func (s Subject) DisplayName() string {
	if n, ok := subjectNames[s]; ok {
		return n
	}
	return string(s)
}

// Valid reports whether s is in the catalogue.
func (s Subject) Valid() bool {
	_, ok := subjectNames[s]
	return ok
}

// ParseSubject accepts a subject key, display name or Indonesian name,
// case-insensitively.
func ParseSubject(s string) (Subject, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if sub, ok := subjectAliases[key]; ok {
		return sub, nil
	}
	for _, sub := range Subjects {
		if key == string(sub) || key == strings.ToLower(sub.DisplayName()) {
			return sub, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q", s)
}

// Level is the school stage the questions target.
type Level string

const (
	LevelElementary     Level = "elementary"
	LevelLowerSecondary Level = "lower-secondary"
	LevelUpperSecondary Level = "upper-secondary"
)

// Levels lists the stages in ascending order.
var Levels = []Level{LevelElementary, LevelLowerSecondary, LevelUpperSecondary}

var levelNames = map[Level]string{
	LevelElementary:     "Elementary school (SD)",
	LevelLowerSecondary: "Lower secondary school (SMP)",
	LevelUpperSecondary: "Upper secondary school (SMA)",
}

// levelAliases maps the Indonesian stage abbreviations.
var levelAliases = map[string]Level{
	"sd":  LevelElementary,
	"smp": LevelLowerSecondary,
	"sma": LevelUpperSecondary,
}

// DisplayName returns the human-readable level name.
func (l Level) DisplayName() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return string(l)
}

// Abbrev returns the Indonesian abbreviation of l (SD, SMP, SMA), or l
// itself when it is not a known level.
func (l Level) Abbrev() string {
	for a, lv := range levelAliases {
		if lv == l {
			return strings.ToUpper(a)
		}
	}
	return string(l)
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ParseLevel accepts a level key or one of SD, SMP, SMA.
func ParseLevel(s string) (Level, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if l, ok := levelAliases[key]; ok {
		return l, nil
	}
	if l := Level(key); l.Valid() {
		return l, nil
	}
	return "", fmt.Errorf("unknown level %q: want elementary, lower-secondary or upper-secondary", s)
}

// Params are the inputs to one quiz generation.
type Params struct {
	Subject Subject
	Level   Level

	// Aspiration is the learner's stated goal, e.g. "become a doctor".
	// Questions are framed around it.
	Aspiration string

	// Count is the number of questions. Zero means DefaultCount.
	Count int
}

// WithDefaults fills zero fields.
func (p Params) WithDefaults() Params {
	if p.Count == 0 {
		p.Count = DefaultCount
	}
	p.Aspiration = strings.TrimSpace(p.Aspiration)
	return p
}

// Validate checks every field.
func (p Params) Validate() error {
	var errs []error
	if !p.Subject.Valid() {
		errs = append(errs, fmt.Errorf("unknown subject %q", p.Subject))
	}
	if !p.Level.Valid() {
		errs = append(errs, fmt.Errorf("unknown level %q", p.Level))
	}
	if strings.TrimSpace(p.Aspiration) == "" {
		errs = append(errs, errors.New("aspiration must not be empty"))
	}
	if p.Count <= 0 {
		errs = append(errs, fmt.Errorf("count must be positive, got %d", p.Count))
	}
	return errors.Join(errs...)
}
