package extractor

import (
	"strings"

	"github.com/nikogura/resume-agent/pkg/resume"
)

// Reducer folds classified lines into a record.
type Reducer struct {
	policy    SectionPolicy
	separator string
	inSkills  bool

	summary     []string
	skills      []string
	experiences []string

	seenSkills      map[string]struct{}
	seenExperiences map[string]struct{}
}

// NewReducer creates a Reducer with the given section policy and summary separator.
func NewReducer(policy SectionPolicy, separator string) (r *Reducer) {
	r = &Reducer{
		policy:          policy,
		separator:       separator,
		skills:          make([]string, 0),
		experiences:     make([]string, 0),
		seenSkills:      make(map[string]struct{}),
		seenExperiences: make(map[string]struct{}),
	}
	return r
}

// Feed applies one classified line.
func (r *Reducer) Feed(line Line) {
	switch line.Kind {
	case KindBlank:
		// Blank lines never leave a skills section.
	case KindSkillsMarker:
		r.inSkills = true
		if line.HasInline {
			r.addSkills(splitItems(line.Text))
			if r.policy == SectionInline {
				r.inSkills = false
			}
		}
	case KindBullet:
		if line.Text == "" {
			return
		}
		if r.inSkills {
			r.addSkills([]string{line.Text})
			return
		}
		r.addExperience(line.Text)
	case KindPlain:
		if r.inSkills && strings.Contains(line.Text, ",") {
			r.addSkills(splitItems(line.Text))
			return
		}
		r.summary = append(r.summary, line.Text)
	}
}

// Record returns the accumulated record. The reducer can keep being fed afterwards.
func (r *Reducer) Record(name string) (record resume.Record) {
	record = resume.Record{
		Name:        name,
		Summary:     strings.Join(r.summary, r.separator),
		Skills:      append([]string{}, r.skills...),
		Experiences: append([]string{}, r.experiences...),
	}
	return record
}

func (r *Reducer) addSkills(items []string) {
	for _, item := range items {
		if _, ok := r.seenSkills[item]; ok {
			continue
		}
		r.seenSkills[item] = struct{}{}
		r.skills = append(r.skills, item)
	}
}

func (r *Reducer) addExperience(item string) {
	if _, ok := r.seenExperiences[item]; ok {
		return
	}
	r.seenExperiences[item] = struct{}{}
	r.experiences = append(r.experiences, item)
}
