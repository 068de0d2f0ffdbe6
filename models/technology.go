package models

type Technology struct {
	ID   int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"column:name;type:varchar(30);not null;unique"`
}

func (Technology) TableName() string {
	return "technologies"
}

// ProjectTechnology links a project to a technology.
type ProjectTechnology struct {
	ID           int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	AddedIn      Date  `json:"addedIn" gorm:"column:addedIn;type:date;not null"`
	ProjectID    int64 `json:"projectId" gorm:"column:projectId;not null;uniqueIndex:idx_project_technology"`
	TechnologyID int64 `json:"technologyId" gorm:"column:technologyId;not null;uniqueIndex:idx_project_technology"`
}

func (ProjectTechnology) TableName() string {
	return "projects_technologies"
}

var TechnologyFields = []string{"name"}
