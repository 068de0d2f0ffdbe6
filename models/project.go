package models

// Project is a work item owned by one developer.
type Project struct {
	ID            int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name          string `json:"name" gorm:"column:name;type:varchar(50);not null"`
	Description   string `json:"description" gorm:"column:description;type:text;not null"`
	EstimatedTime string `json:"estimatedTime" gorm:"column:estimatedTime;type:varchar(20);not null"`
	Repository    string `json:"repository" gorm:"column:repository;type:varchar(120);not null"`
	StartDate     Date   `json:"startDate" gorm:"column:startDate;type:date;not null"`
	EndDate       *Date  `json:"endDate" gorm:"column:endDate;type:date"`
	DeveloperID   int64  `json:"developerId" gorm:"column:developerId;not null;index"`

	Developer *Developer `json:"-" gorm:"foreignKey:DeveloperID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string {
	return "projects"
}

var (
	// ProjectRequiredFields must all be present on create.
	ProjectRequiredFields = []string{"name", "description", "estimatedTime", "repository", "startDate", "developerId"}
	// ProjectOptionalFields may be sent on create and update.
	ProjectOptionalFields = []string{"endDate"}
	// ProjectDateFields are validated as YYYY-MM-DD when present.
	ProjectDateFields = []string{"startDate", "endDate"}
)
