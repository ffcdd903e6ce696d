package cmd

import (
	"log/slog"

	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/codegen"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	codeGenerator *codegen.SequenceCodeGenerator
	logger        *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		codeGenerator: codegen.NewSequenceCodeGenerator(gormDB),
		logger:        logger,
	}
}

func (c *CompositionRoot) CodeGenerator() *codegen.SequenceCodeGenerator {
	return c.codeGenerator
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.codeGenerator, c.logger)
}

func (c *CompositionRoot) CreateAcceptCollectionCommandHandler() commands.AcceptCollectionCommandHandler {
	return commands.NewAcceptCollectionCommandHandler(c.handoffUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeCollectionCommandHandler() commands.FinalizeCollectionCommandHandler {
	return commands.NewFinalizeCollectionCommandHandler(c.handoffUoWFactory())
}

func (c *CompositionRoot) CreateRegisterDepotArrivalCommandHandler() commands.RegisterDepotArrivalCommandHandler {
	return commands.NewRegisterDepotArrivalCommandHandler(c.handoffUoWFactory())
}

func (c *CompositionRoot) CreateClaimVolumeCommandHandler() commands.ClaimVolumeCommandHandler {
	return commands.NewClaimVolumeCommandHandler(c.handoffUoWFactory())
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.handoffUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeDeliveryCommandHandler() commands.FinalizeDeliveryCommandHandler {
	return commands.NewFinalizeDeliveryCommandHandler(c.handoffUoWFactory())
}

func (c *CompositionRoot) CreateRecordOccurrenceCommandHandler() commands.RecordOccurrenceCommandHandler {
	return commands.NewRecordOccurrenceCommandHandler(c.handoffUoWFactory())
}

func (c *CompositionRoot) CreateResetStuckStagingCommandHandler() commands.ResetStuckStagingCommandHandler {
	var f commands.StagingUoWFactory = FuncStagingUoWFactory(func() commands.StagingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetStuckStagingCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentTimelineQueryHandler() queries.GetShipmentTimelineQueryHandler {
	return queries.NewGetShipmentTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchAvailableVolumesQueryHandler() queries.SearchAvailableVolumesQueryHandler {
	return queries.NewSearchAvailableVolumesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) handoffUoWFactory() commands.HandoffUoWFactory {
	return FuncHandoffUoWFactory(func() commands.HandoffUoW {
		return c.uowFactory.Create()
	})
}

type FuncHandoffUoWFactory func() commands.HandoffUoW

func (f FuncHandoffUoWFactory) Create() commands.HandoffUoW {
	return f()
}

type FuncStagingUoWFactory func() commands.StagingUoW

func (f FuncStagingUoWFactory) Create() commands.StagingUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
