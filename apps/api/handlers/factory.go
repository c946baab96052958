package handlers

import (
	"github.com/opus-finance/opus-api/libs/go/interfaces"
	"github.com/opus-finance/opus-api/libs/go/services"
	"github.com/opus-finance/opus-api/libs/go/types/business"
	"go.uber.org/zap"
)

// HandlerFactory creates handlers with proper dependency injection
type HandlerFactory struct {
	// Common services
	commonServices *CommonServices

	// Services
	tokenService      interfaces.TokenService
	probeService      interfaces.LockProbeService
	lockScanner       interfaces.LockScanner
	detector          interfaces.CapabilityDetector
	indexer           interfaces.EventLockIndexer
	statisticsService interfaces.StatisticsService
	contentService    interfaces.ContentService
	sessionService    interfaces.SessionService

	// Configuration
	defaultScan business.ScanConfig

	// Logger
	logger *zap.Logger
}

// HandlerFactoryConfig contains all configuration for the handler factory
type HandlerFactoryConfig struct {
	// Services - pass concrete implementations that satisfy the interfaces
	TokenService      interfaces.TokenService
	LockProbeService  interfaces.LockProbeService
	LockScanner       interfaces.LockScanner
	Detector          interfaces.CapabilityDetector
	EventLockIndexer  interfaces.EventLockIndexer
	StatisticsService interfaces.StatisticsService
	ContentService    interfaces.ContentService
	SessionService    interfaces.SessionService

	// Configuration
	DefaultScan business.ScanConfig

	// Logger
	Logger *zap.Logger
}

// NewHandlerFactory creates a new handler factory with all dependencies
func NewHandlerFactory(config HandlerFactoryConfig) *HandlerFactory {
	if config.Logger == nil {
		config.Logger = zap.L()
	}

	return &HandlerFactory{
		commonServices:    NewCommonServices(config.Logger),
		tokenService:      config.TokenService,
		probeService:      config.LockProbeService,
		lockScanner:       config.LockScanner,
		detector:          config.Detector,
		indexer:           config.EventLockIndexer,
		statisticsService: config.StatisticsService,
		contentService:    config.ContentService,
		sessionService:    config.SessionService,
		defaultScan:       config.DefaultScan,
		logger:            config.Logger,
	}
}

// CreateDefaultFactory creates a factory over the services of a container
func CreateDefaultFactory(container *services.Container, logger *zap.Logger) (*HandlerFactory, error) {
	defaultScan, err := container.ScanConfig()
	if err != nil {
		return nil, err
	}

	return NewHandlerFactory(HandlerFactoryConfig{
		TokenService:      container.Token,
		LockProbeService:  container.Probe,
		LockScanner:       container.Scanner,
		Detector:          container.Detector,
		EventLockIndexer:  container.Indexer,
		StatisticsService: container.Stats,
		ContentService:    container.Content,
		SessionService:    container.Sessions,
		DefaultScan:       defaultScan,
		Logger:            logger,
	}), nil
}

// Handler creation methods

// NewHealthHandler creates a new health handler
func (f *HandlerFactory) NewHealthHandler() *HealthHandler {
	return NewHealthHandler()
}

// NewTokenHandler creates a new token handler
func (f *HandlerFactory) NewTokenHandler() *TokenHandler {
	return NewTokenHandler(
		f.commonServices,
		f.tokenService,
	)
}

// NewContentHandler creates a new content handler
func (f *HandlerFactory) NewContentHandler() *ContentHandler {
	return NewContentHandler(
		f.commonServices,
		f.contentService,
	)
}

// NewStatisticsHandler creates a new statistics handler
func (f *HandlerFactory) NewStatisticsHandler() *StatisticsHandler {
	return NewStatisticsHandler(
		f.commonServices,
		f.statisticsService,
	)
}

// NewSessionHandler creates a new session handler
func (f *HandlerFactory) NewSessionHandler() *SessionHandler {
	return NewSessionHandler(
		f.commonServices,
		f.sessionService,
	)
}

// NewLockHandler creates a new lock handler
func (f *HandlerFactory) NewLockHandler() *LockHandler {
	return NewLockHandler(
		f.commonServices,
		f.probeService,
		f.indexer,
	)
}

// NewDebugHandler creates a new debug handler
func (f *HandlerFactory) NewDebugHandler() *DebugHandler {
	return NewDebugHandler(
		f.commonServices,
		f.detector,
		f.lockScanner,
		f.sessionService,
		f.defaultScan,
	)
}
