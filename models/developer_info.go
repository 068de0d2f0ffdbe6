package models

// PreferredOS mirrors the postgres enum type "OS".
type PreferredOS string

const (
	OSWindows PreferredOS = "Windows"
	OSLinux   PreferredOS = "Linux"
	OSMacOS   PreferredOS = "MacOS"
)

// PreferredOSValues lists the enum labels in declaration order.
var PreferredOSValues = []string{string(OSWindows), string(OSLinux), string(OSMacOS)}

// DeveloperInfo is the optional profile extension of a Developer.
type DeveloperInfo struct {
	ID             int64       `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	DeveloperSince Date        `json:"developerSince" gorm:"column:developerSince;type:date;not null"`
	PreferredOS    PreferredOS `json:"preferredOS" gorm:"column:preferredOS;type:\"OS\";not null"`
}

func (DeveloperInfo) TableName() string {
	return "developers_info"
}

var DeveloperInfoFields = []string{"developerSince", "preferredOS"}
