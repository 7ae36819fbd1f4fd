package fakers

import (
	"strings"

	"github.com/go-faker/faker/v4"

	"github.com/hwickes/restyle-pos/app/models"
)

func SupplierFaker() *models.Supplier {
	name := faker.Name()
	return &models.Supplier{
		Name:  name,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Phone: faker.Phonenumber(),
	}
}
