package model

const TableProject = "projects"

// Project is one row of the submission registry, keyed by the submitter
// address. Rows created for deployed collections are keyed by the collection
// address instead.
type Project struct {
	Address string `gorm:"primaryKey"`
	Details string
	Status  int16
}

func (Project) TableName() string {
	return TableProject
}
