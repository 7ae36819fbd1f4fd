package main

import (
	"log"
	"net/http"
	"os"

	"github.com/hwickes/restyle-pos/app/cmd"
	"github.com/hwickes/restyle-pos/app/configs"
	"github.com/hwickes/restyle-pos/app/routes"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	sessionKeys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys missing: %v. Run `restyle-pos generate-keys` first.", err)
	}

	router := routes.NewRouter(db, sessionKeys)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
