package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
)

// Curriculum tables: which subjects apply to which grade band, and the
// stream-specific sets for grades 12 and 13.

var commonSubjects6to9 = []string{
	"Mathematics", "Science", "Sinhala", "English", "History",
	"Buddhism", "Health", "PTS", "Geography", "Tamil", "ICT", "Civil",
}

var optionalSubjects6to9 = []string{"Art", "Music", "Dancing", "Drama"}

var commonSubjects10to11 = []string{
	"Mathematics", "Science", "Sinhala", "English", "History", "Buddhism",
}

var optionalSubjects10to11 = []string{
	"Commerce", "Tamil", "Geography", "Civil Education", "Art", "Dancing",
	"Drama", "Music", "Health Science", "ICT", "Home Science",
}

var streamSubjects = map[string]struct {
	Common   []string
	Optional []string
}{
	"science": {
		Common:   []string{"General English", "General Information Technology"},
		Optional: []string{"Physics", "Chemistry", "Biology", "Combined Mathematics"},
	},
	"commerce": {
		Common:   []string{"General English", "General Information Technology"},
		Optional: []string{"Accounting", "Business Studies", "Economics"},
	},
	"arts": {
		Common:   []string{"General English", "General Information Technology"},
		Optional: []string{"Logic", "Geography", "Political Science", "Media"},
	},
}

type GradeSubjects struct {
	Common   []string `json:"common"`
	Optional []string `json:"optional"`
}

// SubjectsForGrade returns the common and optional subject sets for a grade,
// using the stream for grades 12 and 13.
func SubjectsForGrade(grade int, stream string) GradeSubjects {
	switch {
	case grade >= 6 && grade <= 9:
		return GradeSubjects{Common: commonSubjects6to9, Optional: optionalSubjects6to9}
	case grade == 10 || grade == 11:
		return GradeSubjects{Common: commonSubjects10to11, Optional: optionalSubjects10to11}
	case grade >= 12 && grade <= 13 && stream != "":
		if s, ok := streamSubjects[strings.ToLower(stream)]; ok {
			return GradeSubjects{Common: s.Common, Optional: s.Optional}
		}
	}
	return GradeSubjects{Common: []string{}, Optional: []string{}}
}

// AllSubjects returns the deduplicated catalogue across every grade band.
func AllSubjects() []string {
	seen := make(map[string]struct{})
	var all []string

	add := func(names []string) {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			all = append(all, n)
		}
	}

	add(commonSubjects6to9)
	add(optionalSubjects6to9)
	add(commonSubjects10to11)
	add(optionalSubjects10to11)
	for _, stream := range []string{"science", "commerce", "arts"} {
		add(streamSubjects[stream].Common)
		add(streamSubjects[stream].Optional)
	}
	return all
}

// SeedSubjects upserts the subject catalogue into the database so timetable
// and assignment records can reference it.
func SeedSubjects() {
	seed := func(names []string, kind string, grades []int, stream *string) {
		gradeList := make([]string, len(grades))
		for i, g := range grades {
			gradeList[i] = strconv.Itoa(g)
		}
		gradesCSV := strings.Join(gradeList, ",")

		for _, name := range names {
			var existing models.Subject
			err := database.DB.Where("name = ?", name).First(&existing).Error
			if err == nil {
				continue
			}
			subject := models.Subject{Name: name, Type: kind, Grades: gradesCSV, Stream: stream}
			if err := database.DB.Create(&subject).Error; err != nil {
				log.Printf("Error seeding subject %s: %v", name, err)
			}
		}
	}

	seed(commonSubjects6to9, "common", []int{6, 7, 8, 9}, nil)
	seed(optionalSubjects6to9, "optional", []int{6, 7, 8, 9}, nil)
	seed(commonSubjects10to11, "common", []int{10, 11}, nil)
	seed(optionalSubjects10to11, "optional", []int{10, 11}, nil)
	for name, subjects := range streamSubjects {
		stream := name
		seed(subjects.Common, "common", []int{12, 13}, &stream)
		seed(subjects.Optional, "optional", []int{12, 13}, &stream)
	}

	fmt.Println("✅ Subject catalogue seeded")
}
