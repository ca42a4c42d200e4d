package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-weekend-raytracer/web/server"
)

const defaultPort = 8080

func main() {
	// A missing .env file is fine; the environment and flags still apply
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	// Parse command line flags
	port := flag.Int("port", portFromEnv(), "Port to serve on (overrides RAYTRACER_PORT)")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/render to render the default scene", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

// portFromEnv reads RAYTRACER_PORT, falling back to the default port
func portFromEnv() int {
	value := os.Getenv("RAYTRACER_PORT")
	if value == "" {
		return defaultPort
	}
	port, err := strconv.Atoi(value)
	if err != nil || port <= 0 || port > 65535 {
		log.Printf("Ignoring invalid RAYTRACER_PORT %q", value)
		return defaultPort
	}
	return port
}
