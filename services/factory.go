package services

import (
	"hpo-ontology-gateway/clients"
	"hpo-ontology-gateway/config"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	// Core services
	Resolver     *ClosureResolver
	Path         *PathService
	Relationship *RelationshipService
	Stats        *StatsService
	Batch        *BatchService

	// Remote source
	OntologyClient clients.OntologyClient

	// Monitoring
	Logger        Logger
	HealthService HealthService
}

// ServiceFactory creates and configures all services
type ServiceFactory struct {
	config *config.Config
}

// NewServiceFactory creates a new service factory
func NewServiceFactory(cfg *config.Config) *ServiceFactory {
	return &ServiceFactory{
		config: cfg,
	}
}

// CreateServices creates and wires all services together
func (f *ServiceFactory) CreateServices() (*ServiceContainer, error) {
	logLevel := ParseLogLevel(f.config.Logging.Level)
	logger := NewStructuredLogger(logLevel, nil)

	client := clients.NewOntologyClient(&f.config.Ontology)
	resolver := NewClosureResolver(client, f.config.Limits)

	healthService := NewHealthService("1.0.0", logger)
	healthService.RegisterChecker(NewOntologySourceChecker("ontology_source", client))

	return &ServiceContainer{
		Resolver:       resolver,
		Path:           NewPathService(client, resolver, logger),
		Relationship:   NewRelationshipService(client, resolver, logger),
		Stats:          NewStatsService(client, resolver, logger),
		Batch:          NewBatchService(client, logger),
		OntologyClient: client,
		Logger:         logger,
		HealthService:  healthService,
	}, nil
}
