package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"

	"github.com/hwickes/restyle-pos/app/helpers"
	"github.com/hwickes/restyle-pos/app/models"
)

func UserFaker(role string) *models.User {
	password, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}
	return &models.User{
		Name:     faker.Name(),
		Email:    faker.Email(),
		Password: password,
		Role:     role,
	}
}
