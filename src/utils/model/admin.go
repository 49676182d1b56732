package model

const TableAdmin = "admins"

type Admin struct {
	Address string `gorm:"primaryKey"`
}

func (Admin) TableName() string {
	return TableAdmin
}
