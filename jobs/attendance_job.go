package jobs

import (
	"log"
	"time"

	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
	"github.com/sandunipw/school_manager/utils"
)

// MarkAbsentTeachers records an Absent row for every teacher who has not
// checked in by the morning cutoff. Scheduled after the cutoff on weekdays.
func MarkAbsentTeachers() {
	log.Println("Running job: MarkAbsentTeachers...")

	today := utils.StartOfDay(time.Now())

	var teachers []models.User
	err := database.DB.
		Where("role = ? AND is_active = ?", "teacher", true).
		Find(&teachers).Error
	if err != nil {
		log.Printf("Error loading teachers: %v", err)
		return
	}

	marked := 0
	for _, teacher := range teachers {
		var existing models.TeacherAttendance
		err := database.DB.
			Where("teacher_id = ? AND date = ?", teacher.ID, today).
			First(&existing).Error
		if err == nil {
			continue
		}

		record := models.TeacherAttendance{
			TeacherID: teacher.ID,
			Date:      today,
			Status:    "Absent",
		}
		if err := database.DB.Create(&record).Error; err != nil {
			log.Printf("Error marking teacher %s absent: %v", teacher.ID, err)
			continue
		}
		marked++
	}

	if marked > 0 {
		log.Printf("Marked %d teacher(s) as absent.", marked)
	}
}
