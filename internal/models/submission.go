package models

// FormName identifies one of the intake forms accepted by the API.
type FormName string

const (
	FormApply   FormName = "apply"
	FormContact FormName = "contact"
)

// ApplicationSubmission is one prospective client's intake from the apply wizard.
type ApplicationSubmission struct {
	FullName            string `json:"fullName"`
	DOB                 string `json:"dob"`
	Gender              string `json:"gender"`
	State               string `json:"state"`
	SmokerStatus        string `json:"smokerStatus"`
	MajorConditions     string `json:"majorConditions"`
	MonthlyContribution string `json:"monthlyContribution"`
	DeathBenefitTarget  string `json:"deathBenefitTarget"`
	PrimaryGoal         string `json:"primaryGoal"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	BestTimeToCall      string `json:"bestTimeToCall"`
}

// ContactSubmission is a general inquiry from the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// LabeledValue is one "Label: value" line of a notification body.
type LabeledValue struct {
	Label string
	Value string
}

// Lines returns the submission fields in notification order.
func (a ApplicationSubmission) Lines() []LabeledValue {
	return []LabeledValue{
		{"Full Name", a.FullName},
		{"DOB", a.DOB},
		{"Gender", a.Gender},
		{"State", a.State},
		{"Smoker Status", a.SmokerStatus},
		{"Major Conditions", a.MajorConditions},
		{"Monthly Contribution", a.MonthlyContribution},
		{"Death Benefit Target", a.DeathBenefitTarget},
		{"Primary Goal", a.PrimaryGoal},
		{"Email", a.Email},
		{"Phone", a.Phone},
		{"Best Time to Call", a.BestTimeToCall},
	}
}

// Lines returns the submission fields in notification order.
func (c ContactSubmission) Lines() []LabeledValue {
	return []LabeledValue{
		{"Name", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Message", c.Message},
	}
}
