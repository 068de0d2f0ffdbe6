package models

// Developer is a registered person, identified by a unique email.
type Developer struct {
	ID              int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name            string `json:"name" gorm:"column:name;type:varchar(50);not null"`
	Email           string `json:"email" gorm:"column:email;type:varchar(50);not null;unique"`
	DeveloperInfoID *int64 `json:"developerInfoId" gorm:"column:developerInfoId;unique"`

	DeveloperInfo *DeveloperInfo `json:"-" gorm:"foreignKey:DeveloperInfoID;references:ID"`
}

func (Developer) TableName() string {
	return "developers"
}

// Accepted body keys for developer create (all) and update (any).
var DeveloperFields = []string{"name", "email"}

// DeveloperDetail is a developer left-joined with its info row.
type DeveloperDetail struct {
	DeveloperID                 int64        `json:"developerId" gorm:"column:developerId"`
	DeveloperName               string       `json:"developerName" gorm:"column:developerName"`
	DeveloperEmail              string       `json:"developerEmail" gorm:"column:developerEmail"`
	DeveloperInfoID             *int64       `json:"developerInfoId" gorm:"column:developerInfoId"`
	DeveloperInfoDeveloperSince *string      `json:"developerInfoDeveloperSince" gorm:"column:developerInfoDeveloperSince"`
	DeveloperInfoPreferredOS    *PreferredOS `json:"developerInfoPreferredOS" gorm:"column:developerInfoPreferredOS"`
}

// DeveloperProject is one row of a developer's projects joined with the
// developer, its info and every technology linked to the project.
type DeveloperProject struct {
	DeveloperDetail
	ProjectID            *int64  `json:"projectId" gorm:"column:projectId"`
	ProjectName          *string `json:"projectName" gorm:"column:projectName"`
	ProjectDescription   *string `json:"projectDescription" gorm:"column:projectDescription"`
	ProjectEstimatedTime *string `json:"projectEstimatedTime" gorm:"column:projectEstimatedTime"`
	ProjectRepository    *string `json:"projectRepository" gorm:"column:projectRepository"`
	ProjectStartDate     *string `json:"projectStartDate" gorm:"column:projectStartDate"`
	ProjectEndDate       *string `json:"projectEndDate" gorm:"column:projectEndDate"`
	TechnologyID         *int64  `json:"technologyId" gorm:"column:technologyId"`
	TechnologyName       *string `json:"technologyName" gorm:"column:technologyName"`
}
