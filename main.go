package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/oaktheatre/boxoffice/cmd/app"
)

// @contact.name   Box Office Support
// @contact.email  boxoffice@oaktheatre.org
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
