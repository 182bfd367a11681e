package cmd

import (
	"log/slog"
	"net/http"
	"time"

	"fieldservice/internal/adapters/out/geotracker"
	"fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/core/application/autosave"
	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	drafts     *draft.Store
	scheduler  *autosave.Scheduler
	blobs      ports.BlobStorage
	locator    ports.Locator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, blobs ports.BlobStorage,
	logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	drafts := draft.NewStore()

	quiet := time.Duration(config.AutoSaveQuietMs) * time.Millisecond
	scheduler := autosave.NewScheduler(drafts, uowFactory, quiet, logger)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		drafts:     drafts,
		scheduler:  scheduler,
		blobs:      blobs,
		locator:    geotracker.NewHTTPLocator(config.GeoTrackerBaseURL, &http.Client{Timeout: 10 * time.Second}),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.orderUoWFactory(), c.locator, c.drafts, c.scheduler)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.locator, c.drafts, c.scheduler)
}

func (c *CompositionRoot) CreateAddPhotoCommandHandler() commands.AddPhotoCommandHandler {
	return commands.NewAddPhotoCommandHandler(c.orderUoWFactory(), c.blobs)
}

func (c *CompositionRoot) CreateCaptureSignatureCommandHandler() commands.CaptureSignatureCommandHandler {
	return commands.NewCaptureSignatureCommandHandler(c.orderUoWFactory(), c.blobs, c.drafts)
}

func (c *CompositionRoot) CreateStageSignatureCommandHandler() commands.StageSignatureCommandHandler {
	return commands.NewStageSignatureCommandHandler(c.orderUoWFactory(), c.drafts)
}

func (c *CompositionRoot) CreateDiscardSignatureCommandHandler() commands.DiscardSignatureCommandHandler {
	return commands.NewDiscardSignatureCommandHandler(c.drafts)
}

func (c *CompositionRoot) CreateStageServiceNotesCommandHandler() commands.StageServiceNotesCommandHandler {
	return commands.NewStageServiceNotesCommandHandler(c.orderUoWFactory(), c.drafts, c.scheduler)
}

func (c *CompositionRoot) CreateAddLineItemCommandHandler() commands.AddLineItemCommandHandler {
	return commands.NewAddLineItemCommandHandler(c.orderUoWFactory(), c.drafts, c.scheduler)
}

func (c *CompositionRoot) CreateChangeLineItemCommandHandler() commands.ChangeLineItemCommandHandler {
	return commands.NewChangeLineItemCommandHandler(c.orderUoWFactory(), c.drafts, c.scheduler)
}

func (c *CompositionRoot) CreateRemoveLineItemCommandHandler() commands.RemoveLineItemCommandHandler {
	return commands.NewRemoveLineItemCommandHandler(c.orderUoWFactory(), c.drafts, c.scheduler)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.scheduler, logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
