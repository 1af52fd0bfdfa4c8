package domain

import (
	"context"
	"fmt"
	"time"
)

// Gender es el código externo (el que viaja hacia y desde la UI).
// En la base se guarda un código numérico distinto, ver DBCode.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

var genderDBCodes = map[Gender]string{
	GenderMale:   "1",
	GenderFemale: "2",
}

func GenderFromCode(code string) (Gender, error) {
	g := Gender(code)
	if _, ok := genderDBCodes[g]; !ok {
		return "", fmt.Errorf("género desconocido %q", code)
	}
	return g, nil
}

func GenderFromDBCode(db string) (Gender, error) {
	for g, c := range genderDBCodes {
		if c == db {
			return g, nil
		}
	}
	return "", fmt.Errorf("código de género desconocido en base %q", db)
}

func (g Gender) DBCode() string { return genderDBCodes[g] }

type Customer struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:140;index:idx_customers_name_phone"`
	Phone     string `gorm:"size:60;index:idx_customers_name_phone"`
	Gender    string `gorm:"size:2"` // código interno, ver Gender
	Address   string `gorm:"size:255"`
	Email     string `gorm:"size:140"`
	Level     string `gorm:"size:10"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const DefaultCustomerLevel = "0"

type CustomerRepo interface {
	// FindByNameAndPhone busca por igualdad exacta de ambos campos.
	FindByNameAndPhone(ctx context.Context, name, phone string) ([]Customer, error)
	// FindByNameLike busca clientes cuyo nombre contenga la subcadena.
	FindByNameLike(ctx context.Context, name string) ([]Customer, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Customer, error)
	Save(ctx context.Context, c *Customer) error
}
