package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReducerSectionState(t *testing.T) {
	r := NewReducer(SectionInline, "\n")
	assert.False(t, r.inSkills)

	r.Feed(Line{Kind: KindSkillsMarker, Text: "Go", HasInline: true})
	assert.False(t, r.inSkills, "inline marker should close the section")

	r.Feed(Line{Kind: KindSkillsMarker})
	assert.True(t, r.inSkills, "bare marker should open the section")

	r.Feed(Line{Kind: KindBlank})
	assert.True(t, r.inSkills, "blank line should not close the section")

	sticky := NewReducer(SectionSticky, "\n")
	sticky.Feed(Line{Kind: KindSkillsMarker, Text: "Go", HasInline: true})
	assert.True(t, sticky.inSkills)
}

func TestReducerRecordIsACopy(t *testing.T) {
	r := NewReducer(SectionInline, "\n")
	r.Feed(Line{Kind: KindBullet, Text: "first"})

	record := r.Record("")
	record.Experiences[0] = "changed"

	r.Feed(Line{Kind: KindBullet, Text: "second"})
	assert.Equal(t, []string{"first", "second"}, r.Record("").Experiences)
}

func TestReducerMarkerWithoutItems(t *testing.T) {
	r := NewReducer(SectionInline, "\n")
	r.Feed(Line{Kind: KindSkillsMarker, Text: ", ,", HasInline: true})

	record := r.Record("")
	assert.Empty(t, record.Skills)
	assert.Empty(t, record.Summary)
	assert.False(t, r.inSkills)
}
