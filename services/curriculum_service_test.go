package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectsForGradeJuniorBand(t *testing.T) {
	subjects := SubjectsForGrade(7, "")
	assert.Contains(t, subjects.Common, "Mathematics")
	assert.Contains(t, subjects.Common, "PTS")
	assert.Contains(t, subjects.Optional, "Art")
}

func TestSubjectsForGradeOrdinaryLevelBand(t *testing.T) {
	subjects := SubjectsForGrade(11, "")
	assert.Contains(t, subjects.Common, "Buddhism")
	assert.Contains(t, subjects.Optional, "Commerce")
	assert.NotContains(t, subjects.Common, "PTS")
}

func TestSubjectsForGradeStreams(t *testing.T) {
	science := SubjectsForGrade(12, "Science")
	assert.Contains(t, science.Common, "General English")
	assert.Contains(t, science.Optional, "Physics")

	commerce := SubjectsForGrade(13, "commerce")
	assert.Contains(t, commerce.Optional, "Accounting")

	arts := SubjectsForGrade(12, "ARTS")
	assert.Contains(t, arts.Optional, "Logic")
}

func TestSubjectsForGradeUnknown(t *testing.T) {
	assert.Empty(t, SubjectsForGrade(5, "").Common)
	assert.Empty(t, SubjectsForGrade(12, "").Common, "advanced level without a stream has no subject set")
	assert.Empty(t, SubjectsForGrade(12, "law").Common)
}

func TestAllSubjectsDeduplicates(t *testing.T) {
	all := AllSubjects()

	seen := make(map[string]int)
	for _, s := range all {
		seen[s]++
	}
	for name, n := range seen {
		assert.Equal(t, 1, n, "subject %q listed more than once", name)
	}

	assert.Contains(t, all, "Mathematics")
	assert.Contains(t, all, "Combined Mathematics")
	assert.Contains(t, all, "Media")
}
