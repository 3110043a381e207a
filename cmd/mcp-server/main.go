package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"hpo-ontology-gateway/config"
	"hpo-ontology-gateway/mcp"
	"hpo-ontology-gateway/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Initialize services
	serviceFactory := services.NewServiceFactory(cfg)
	serviceContainer, err := serviceFactory.CreateServices()
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Create MCP server
	server := mcp.NewMCPServer(
		"hpo-ontology-mcp-server",
		"1.0.0",
		"MCP server for navigating the Human Phenotype Ontology",
		serviceContainer,
	)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping server...")
		server.Stop()
		os.Exit(0)
	}()

	// Start MCP server
	log.Println("Starting HPO Ontology MCP Server...")
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}
