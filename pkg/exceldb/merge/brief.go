package merge

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Brief is a course brief: the page fields of a course document plus
// its night and instructor rows.
type Brief struct {
	DutyManager          string `yaml:"duty_manager"`
	DutyManagerPhone     string `yaml:"duty_manager_phone"`
	CourseDirector       string `yaml:"course_director"`
	CourseCode           string `yaml:"course_code" validate:"required"`
	CourseDates          string `yaml:"course_dates"`
	CourseType           string `yaml:"course_type"`
	Client               string `yaml:"client" validate:"required"`
	ClientStudents       int    `yaml:"client_students" validate:"gte=0"`
	ClientTeams          int    `yaml:"client_teams" validate:"gte=0"`
	ClientContact        string `yaml:"client_contact"`
	ClientContactPhone   string `yaml:"client_contact_phone"`
	ClientHistory        string `yaml:"client_history"`
	H5ClientManager      string `yaml:"h5_client_manager"`
	H5ClientManagerPhone string `yaml:"h5_client_manager_phone"`
	EquipmentCollectedBy string `yaml:"equipment_collected_by"`
	EquipmentReturnedBy  string `yaml:"equipment_returned_by"`
	CourseBudgetProvided int    `yaml:"course_budget_provided" validate:"gte=0"`
	PreCourse1           string `yaml:"pre_course_1"`
	PreCourse2           string `yaml:"pre_course_2"`
	PreCourse3           string `yaml:"pre_course_3"`
	Notes                string `yaml:"notes"`

	Nights      []map[string]interface{} `yaml:"nights"`
	Instructors []map[string]interface{} `yaml:"instructors"`
}

// Validate checks the brief. Errors are validator.ValidationErrors.
func (b *Brief) Validate() error {
	return validate.Struct(b)
}

// Document converts the brief to merge input. Group "Night" holds the
// nights and group "Instructor" the instructors.
func (b *Brief) Document() Document {
	return Document{
		Fields: map[string]interface{}{
			"DutyManager":          b.DutyManager,
			"DutyManagerPhone":     b.DutyManagerPhone,
			"CourseDirector":       b.CourseDirector,
			"CourseCode":           b.CourseCode,
			"CourseDates":          b.CourseDates,
			"CourseType":           b.CourseType,
			"Client":               b.Client,
			"ClientStudents":       b.ClientStudents,
			"ClientTeams":          b.ClientTeams,
			"ClientContact":        b.ClientContact,
			"ClientContactPhone":   b.ClientContactPhone,
			"ClientHistory":        b.ClientHistory,
			"H5ClientManager":      b.H5ClientManager,
			"H5ClientManagerPhone": b.H5ClientManagerPhone,
			"EquipmentCollectedBy": b.EquipmentCollectedBy,
			"EquipmentReturnedBy":  b.EquipmentReturnedBy,
			"CourseBudgetProvided": b.CourseBudgetProvided,
			"PreCourse1":           b.PreCourse1,
			"PreCourse2":           b.PreCourse2,
			"PreCourse3":           b.PreCourse3,
			"Notes":                b.Notes,
		},
		Groups: map[string][]map[string]interface{}{
			"Night":      b.Nights,
			"Instructor": b.Instructors,
		},
	}
}
